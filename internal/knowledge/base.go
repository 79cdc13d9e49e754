package knowledge

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"faqbot/internal/models"
)

var (
	ErrEmptyFaqs       = errors.New("knowledge base has no FAQ entries")
	ErrUnknownCategory = errors.New("keyword category has no answer")
	ErrNoDefaults      = errors.New("knowledge base has no default responses")
	ErrNotFound        = errors.New("category not found")
	ErrInvalidFaq      = errors.New("invalid FAQ entry")
)

// Base is the read-only knowledge base. It is built once by New and never
// mutated afterwards, so it is safe for concurrent use.
type Base struct {
	faqs       []models.FaqEntry
	categories []models.KeywordCategory
	answers    map[string]string
	welcome    string
	defaults   []string
}

// Data is the raw material of a knowledge base, as read from a file, a
// database or the built-in set.
type Data struct {
	Faqs             []models.FaqEntry        `yaml:"faqs"`
	Categories       []models.KeywordCategory `yaml:"categories"`
	CategoryAnswers  map[string]string        `yaml:"category_answers"`
	Welcome          string                   `yaml:"welcome"`
	DefaultResponses []string                 `yaml:"default_responses"`
}

// New validates d and freezes it into a Base. Every category must have an
// answer, the FAQ list must not be empty and every FAQ needs a question with
// at least one letter or digit and a non-blank answer.
func New(d Data) (*Base, error) {
	if len(d.Faqs) == 0 {
		return nil, ErrEmptyFaqs
	}
	for i, f := range d.Faqs {
		if strings.IndexFunc(f.Question, isWordRune) < 0 {
			return nil, fmt.Errorf("%w: question %d has no words", ErrInvalidFaq, i)
		}
		if strings.TrimSpace(f.Answer) == "" {
			return nil, fmt.Errorf("%w: question %q has no answer", ErrInvalidFaq, f.Question)
		}
	}
	if len(d.DefaultResponses) == 0 {
		return nil, ErrNoDefaults
	}

	seen := make(map[string]struct{}, len(d.Categories))
	categories := make([]models.KeywordCategory, 0, len(d.Categories))
	answers := make(map[string]string, len(d.Categories))
	for _, c := range d.Categories {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("duplicate keyword category %q", c.Name)
		}
		seen[c.Name] = struct{}{}

		answer, ok := d.CategoryAnswers[c.Name]
		if !ok || answer == "" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c.Name)
		}
		answers[c.Name] = answer
		categories = append(categories, models.KeywordCategory{
			Name:     c.Name,
			Keywords: append([]string(nil), c.Keywords...),
		})
	}

	return &Base{
		faqs:       append([]models.FaqEntry(nil), d.Faqs...),
		categories: categories,
		answers:    answers,
		welcome:    d.Welcome,
		defaults:   append([]string(nil), d.DefaultResponses...),
	}, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ListFaqs returns the FAQ entries in scan order.
func (b *Base) ListFaqs() []models.FaqEntry {
	return append([]models.FaqEntry(nil), b.faqs...)
}

// Categories returns the keyword categories in declaration order.
func (b *Base) Categories() []models.KeywordCategory {
	out := make([]models.KeywordCategory, len(b.categories))
	for i, c := range b.categories {
		out[i] = models.KeywordCategory{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

func (b *Base) AnswerForCategory(name string) (string, error) {
	answer, ok := b.answers[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return answer, nil
}

func (b *Base) Welcome() string {
	return b.welcome
}

func (b *Base) DefaultResponses() []string {
	return append([]string(nil), b.defaults...)
}

// Data returns a copy of the knowledge base contents, suitable for seeding
// another store.
func (b *Base) Data() Data {
	answers := make(map[string]string, len(b.answers))
	for k, v := range b.answers {
		answers[k] = v
	}
	return Data{
		Faqs:             b.ListFaqs(),
		Categories:       b.Categories(),
		CategoryAnswers:  answers,
		Welcome:          b.welcome,
		DefaultResponses: b.DefaultResponses(),
	}
}
