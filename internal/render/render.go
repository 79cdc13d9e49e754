// Package render turns the bot's markup (**bold**, *italic*, newline
// paragraphs) into the output format a client asked for.
package render

import "strings"

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatTerminal = "terminal"
)

type Renderer interface {
	Name() string
	Render(text string) string
}

// Markdown passes the markup through untouched.
type Markdown struct{}

func (Markdown) Name() string { return FormatMarkdown }

func (Markdown) Render(text string) string { return text }

// ByName returns the renderer for format. Unknown formats get Markdown.
func ByName(format string) Renderer {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatHTML:
		return NewHTML()
	case FormatTerminal:
		return NewTerminal("", 0)
	default:
		return Markdown{}
	}
}
