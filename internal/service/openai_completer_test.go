package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"faqbot/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newOpenAITestServer(t *testing.T, status int, body string, seen *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestOpenAICompleter(srv *httptest.Server) *OpenAICompleter {
	return NewOpenAICompleter(&config.OpenAIConfig{
		APIKey:  "sk-test",
		Model:   "gpt-test",
		BaseURL: srv.URL + "/v1",
	}, zap.NewNop())
}

func TestOpenAICompleter_Success(t *testing.T) {
	var seen chatRequest
	srv := newOpenAITestServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "gpt-test",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": " Our programs last **3 months**. "}, "finish_reason": "stop"}]
	}`, &seen)

	got, err := newTestOpenAICompleter(srv).Complete(context.Background(), "how long?", "only Iron Lady")
	require.NoError(t, err)
	assert.Equal(t, "Our programs last **3 months**.", got)

	assert.Equal(t, "gpt-test", seen.Model)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Equal(t, "only Iron Lady", seen.Messages[0].Content)
	assert.Equal(t, "user", seen.Messages[1].Role)
	assert.Equal(t, "how long?", seen.Messages[1].Content)
}

func TestOpenAICompleter_NoChoicesIsMalformed(t *testing.T) {
	srv := newOpenAITestServer(t, http.StatusOK, `{"id": "x", "choices": []}`, nil)

	_, err := newTestOpenAICompleter(srv).Complete(context.Background(), "q", "s")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestOpenAICompleter_EmptyContentIsMalformed(t *testing.T) {
	srv := newOpenAITestServer(t, http.StatusOK, `{"choices": [{"index": 0, "message": {"role": "assistant", "content": ""}}]}`, nil)

	_, err := newTestOpenAICompleter(srv).Complete(context.Background(), "q", "s")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestOpenAICompleter_ServerErrorIsNetwork(t *testing.T) {
	srv := newOpenAITestServer(t, http.StatusInternalServerError, `{"error": {"message": "down", "type": "server_error"}}`, nil)

	_, err := newTestOpenAICompleter(srv).Complete(context.Background(), "q", "s")
	assert.ErrorIs(t, err, ErrNetwork)
}
