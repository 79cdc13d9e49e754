package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByName(t *testing.T) {
	assert.Equal(t, FormatHTML, ByName("HTML").Name())
	assert.Equal(t, FormatTerminal, ByName("terminal").Name())
	assert.Equal(t, FormatMarkdown, ByName("markdown").Name())
	assert.Equal(t, FormatMarkdown, ByName("").Name())
	assert.Equal(t, FormatMarkdown, ByName("pdf").Name())
}

func TestMarkdown_PassThrough(t *testing.T) {
	in := "**Yes!** see *below*\nline two"
	assert.Equal(t, in, Markdown{}.Render(in))
}

func TestHTML_Render(t *testing.T) {
	got := NewHTML().Render("**Yes!** programs are *great*\n🎯 Focus")
	assert.Equal(t, `<strong>Yes!</strong> programs are <em>great</em><br><span class="emoji">🎯</span> Focus`, got)
}

func TestHTML_EscapesUserMarkup(t *testing.T) {
	got := NewHTML().Render(`<script>alert(1)</script> **hi**`)
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "<strong>hi</strong>")
}

func TestHTML_ZWJEmojiWrappedWhole(t *testing.T) {
	got := NewHTML().Render("👩‍💼 leaders")
	assert.Equal(t, `<span class="emoji">👩‍💼</span> leaders`, got)
}

func TestTerminal_Render(t *testing.T) {
	got := NewTerminal("notty", 80).Render("**Yes!** certificates are provided")
	assert.Contains(t, got, "Yes!")
	assert.Contains(t, got, "certificates are provided")
}

func TestTerminal_FallbackWithoutRenderer(t *testing.T) {
	assert.Equal(t, "plain", (&Terminal{}).Render("plain"))
}
