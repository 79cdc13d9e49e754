package service

import (
	"fmt"
	"strings"

	"faqbot/internal/knowledge"
)

// ApologyText is shown when the completion provider fails or times out.
const ApologyText = "I'm sorry, I couldn't find an answer right now. 🙏\n\nPlease try again in a moment, or ask me about our **programs**, **duration**, **delivery options**, **certificates**, **mentors** or **location**."

// BuildSystemInstruction renders the fixed instruction sent with every
// completion request. The FAQ answers are embedded as the only facts the
// model may use.
func BuildSystemInstruction(kb *knowledge.Base) string {
	var b strings.Builder
	b.WriteString(`You are the assistant of Iron Lady, a provider of leadership programs for women.

# RULES
- Answer only questions about Iron Lady's programs: what they are, duration, delivery, certificates, mentors and location.
- If the question is about anything else, politely refuse and invite the user to ask about the programs.
- Use only the facts below. If they do not cover the question, say so and suggest contacting the Iron Lady team.
- Keep answers under 120 words. Use **bold** for key facts and *italic* sparingly. Separate paragraphs with a newline.

# FACTS
`)
	for i, f := range kb.ListFaqs() {
		b.WriteString(fmt.Sprintf("%d. Q: %s\n   A: %s\n", i+1, f.Question, strings.ReplaceAll(f.Answer, "\n", " ")))
	}
	return b.String()
}
