package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	emojiRe  = regexp.MustCompile(emojiPattern())
)

// Multi-rune ZWJ sequences come first so the alternation prefers them.
var emojis = []string{
	"👩‍💼", "👨‍💼",
	"🎯", "💰", "💻", "🏢", "🌟", "✨", "⏰", "🎓", "📍", "🔹", "🚀",
}

func emojiPattern() string {
	quoted := make([]string, len(emojis))
	for i, e := range emojis {
		quoted[i] = regexp.QuoteMeta(e)
	}
	return strings.Join(quoted, "|")
}

// HTML renders markup to inline HTML for the browser widget.
type HTML struct {
	policy *bluemonday.Policy
}

func NewHTML() *HTML {
	p := bluemonday.NewPolicy()
	p.AllowElements("strong", "em", "br")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^emoji$`)).OnElements("span")
	return &HTML{policy: p}
}

func (*HTML) Name() string { return FormatHTML }

func (h *HTML) Render(text string) string {
	out := html.EscapeString(text)
	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	out = emojiRe.ReplaceAllString(out, `<span class="emoji">$0</span>`)
	return h.policy.Sanitize(out)
}
