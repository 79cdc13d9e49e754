package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"faqbot/internal/knowledge"
	"faqbot/internal/render"
	"faqbot/internal/service"
	"faqbot/pkg/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedRand struct{}

func (fixedRand) Intn(int) int { return 0 }

func newTestRepl(t *testing.T, input string) (*repl, *bytes.Buffer, *service.ChatService) {
	t.Helper()

	kb := knowledge.Default()
	responses, err := service.NewResponseService(kb, nil, nil, fixedRand{}, zap.NewNop())
	require.NoError(t, err)
	chat := service.NewChatService(responses, kb.Welcome(), &config.ChatConfig{MaxMessageLength: 200}, zap.NewNop())
	t.Cleanup(chat.Close)

	out := &bytes.Buffer{}
	return &repl{
		chat:     chat,
		renderer: render.Markdown{},
		in:       bufio.NewScanner(strings.NewReader(input)),
		out:      out,
	}, out, chat
}

func testCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestRepl_AnswersAndSkipsBlankLines(t *testing.T) {
	r, out, chat := newTestRepl(t, "   \nWhat programs does Iron Lady offer?\n/quit\n")

	require.NoError(t, r.run(testCmd()))

	text := out.String()
	assert.Contains(t, text, "Iron Lady offers three main programs")
	assert.Contains(t, text, "You might also ask:")
	// The session is dropped when the REPL exits.
	assert.Equal(t, 0, chat.SessionCount())
}

func TestRepl_UnknownCommand(t *testing.T) {
	r, out, _ := newTestRepl(t, "/dance\n")

	require.NoError(t, r.run(testCmd()))
	assert.Contains(t, out.String(), "unknown command /dance")
}

func TestRepl_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	r, out, _ := newTestRepl(t, "who are the mentors\n/export "+path+"\n")

	require.NoError(t, r.run(testCmd()))
	assert.Contains(t, out.String(), "Transcript saved to "+path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Iron Lady chat transcript")
	assert.Contains(t, string(raw), "who are the mentors")
}
