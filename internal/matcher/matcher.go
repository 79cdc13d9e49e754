// Package matcher maps free-text questions to knowledge base answers.
//
// Matching runs in three stages: direct FAQ match, keyword category match and
// no match. It is deterministic and total over all strings.
package matcher

import (
	"fmt"
	"strings"

	"faqbot/internal/models"
)

type Kind int

const (
	KindNoMatch Kind = iota
	KindFaq
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindFaq:
		return "faq"
	case KindCategory:
		return "category"
	default:
		return "no_match"
	}
}

// Result is the outcome of Match. Question is set for KindFaq, Category for
// KindCategory; Answer is set for both.
type Result struct {
	Kind     Kind
	Question string
	Category string
	Answer   string
}

// Source is the read-only knowledge the matcher scans.
type Source interface {
	ListFaqs() []models.FaqEntry
	Categories() []models.KeywordCategory
	AnswerForCategory(name string) (string, error)
}

type faq struct {
	entry     models.FaqEntry
	canonical string
	tokens    []string
}

type category struct {
	name     string
	keywords []string
	answer   string
}

type Matcher struct {
	faqs       []faq
	categories []category
}

// New precomputes the token sets of every FAQ question and resolves every
// category answer up front, so a category without an answer fails here
// rather than during a conversation.
func New(src Source) (*Matcher, error) {
	m := &Matcher{}
	for _, e := range src.ListFaqs() {
		q := Normalize(e.Question)
		m.faqs = append(m.faqs, faq{
			entry:     e,
			canonical: canonical(q),
			tokens:    Tokenize(q),
		})
	}

	for _, c := range src.Categories() {
		answer, err := src.AnswerForCategory(c.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", c.Name, err)
		}
		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw = Normalize(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		m.categories = append(m.categories, category{name: c.Name, keywords: keywords, answer: answer})
	}
	return m, nil
}

// Match resolves text to a FAQ answer, a category answer or no match.
func (m *Matcher) Match(text string) Result {
	normalized := Normalize(text)
	if normalized == "" {
		return Result{Kind: KindNoMatch}
	}

	if f, ok := m.matchFaq(normalized); ok {
		return Result{Kind: KindFaq, Question: f.entry.Question, Answer: f.entry.Answer}
	}

	if c, ok := m.matchCategory(normalized); ok {
		return Result{Kind: KindCategory, Category: c.name, Answer: c.answer}
	}

	return Result{Kind: KindNoMatch}
}

func (m *Matcher) matchFaq(normalized string) (faq, bool) {
	// A verbatim question always wins over fuzzy overlap with an earlier FAQ.
	if c := canonical(normalized); c != "" {
		for _, f := range m.faqs {
			if f.canonical == c {
				return f, true
			}
		}
	}

	tokens := Tokenize(normalized)
	if len(tokens) == 0 {
		return faq{}, false
	}
	for _, f := range m.faqs {
		if overlap(tokens, f.tokens) >= min(2, len(tokens)) {
			return f, true
		}
	}
	return faq{}, false
}

// overlap counts user tokens that are a substring or superstring of at least
// one FAQ token.
func overlap(user, question []string) int {
	count := 0
	for _, u := range user {
		for _, q := range question {
			if strings.Contains(u, q) || strings.Contains(q, u) {
				count++
				break
			}
		}
	}
	return count
}

// matchCategory picks the category with the strictly highest keyword score.
// Ties keep the first-declared category.
func (m *Matcher) matchCategory(normalized string) (category, bool) {
	best := -1
	bestScore := 0
	for i, c := range m.categories {
		score := 0
		for _, kw := range c.keywords {
			if strings.Contains(normalized, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return category{}, false
	}
	return m.categories[best], true
}
