package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"faqbot/internal/render"
	"faqbot/internal/service"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	userLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Render("You")
	botLabel  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Render("Iron Lady")
	hintStyle = lipgloss.NewStyle().Faint(true)
)

const replHelp = "Commands: /clear resets the chat, /export <file> saves the transcript, /quit exits."

func newChatCmd() *cobra.Command {
	var style string
	var width int

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the bot in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			r := &repl{
				chat:     a.chat,
				renderer: render.NewTerminal(style, width),
				in:       bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
			}
			return r.run(cmd)
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "glamour style (dark, light, notty, ...)")
	cmd.Flags().IntVar(&width, "width", 0, "word wrap width")
	return cmd
}

type repl struct {
	chat     *service.ChatService
	renderer render.Renderer
	in       *bufio.Scanner
	out      io.Writer
	id       uuid.UUID
}

func (r *repl) run(cmd *cobra.Command) error {
	id, welcome := r.chat.CreateSession()
	r.id = id
	defer r.chat.Delete(id)

	for _, m := range welcome {
		r.printBot(m.Text)
	}
	fmt.Fprintln(r.out, hintStyle.Render(replHelp))

	for {
		fmt.Fprintf(r.out, "\n%s: ", userLabel)
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}

		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := r.command(line)
			if err != nil {
				fmt.Fprintln(r.out, hintStyle.Render(err.Error()))
			}
			if quit {
				return nil
			}
			continue
		}

		reply, err := r.chat.Send(cmd.Context(), r.id, line)
		if err != nil {
			if errors.Is(err, service.ErrEmptyInput) {
				continue
			}
			fmt.Fprintln(r.out, hintStyle.Render(err.Error()))
			continue
		}

		r.printBot(reply.Message.Text)
		if len(reply.Suggestions) > 0 {
			fmt.Fprintln(r.out, hintStyle.Render("You might also ask:"))
			for _, s := range reply.Suggestions {
				fmt.Fprintln(r.out, hintStyle.Render("  - "+s))
			}
		}
	}
}

func (r *repl) command(line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/clear":
		messages, err := r.chat.Clear(r.id)
		if err != nil {
			return false, err
		}
		for _, m := range messages {
			r.printBot(m.Text)
		}
		return false, nil
	case "/export":
		path := strings.TrimSpace(arg)
		if path == "" {
			path = "iron-lady-chat.txt"
		}
		transcript, err := r.chat.Export(r.id)
		if err != nil {
			return false, err
		}
		if err := os.WriteFile(path, []byte(transcript), 0644); err != nil {
			return false, fmt.Errorf("failed to write transcript: %w", err)
		}
		fmt.Fprintln(r.out, hintStyle.Render("Transcript saved to "+path))
		return false, nil
	case "/help":
		fmt.Fprintln(r.out, hintStyle.Render(replHelp))
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %s", name)
	}
}

func (r *repl) printBot(text string) {
	fmt.Fprintf(r.out, "\n%s:\n%s\n", botLabel, r.renderer.Render(text))
}
