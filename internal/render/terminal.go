package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	defaultStyle    = "dark"
	defaultWordWrap = 80
)

// Terminal renders markup with ANSI styling for the CLI.
type Terminal struct {
	renderer *glamour.TermRenderer
}

// NewTerminal builds a terminal renderer. An empty style selects "dark"; a
// non-positive width selects 80 columns. If glamour cannot be set up the
// renderer degrades to plain text.
func NewTerminal(style string, width int) *Terminal {
	if style == "" {
		style = defaultStyle
	}
	if width <= 0 {
		width = defaultWordWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Terminal{}
	}
	return &Terminal{renderer: r}
}

func (*Terminal) Name() string { return FormatTerminal }

func (t *Terminal) Render(text string) string {
	if t.renderer == nil {
		return text
	}
	// Single newlines are line breaks in the bot markup but soft wraps in
	// markdown; a trailing double space keeps them.
	out, err := t.renderer.Render(strings.ReplaceAll(text, "\n", "  \n"))
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
