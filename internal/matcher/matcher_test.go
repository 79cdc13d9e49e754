package matcher

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/knowledge"
	"faqbot/internal/models"
)

func newDefaultMatcher(t *testing.T) (*Matcher, *knowledge.Base) {
	t.Helper()
	kb := knowledge.Default()
	m, err := New(kb)
	require.NoError(t, err)
	return m, kb
}

func TestMatch_ExactQuestionReturnsItsAnswer(t *testing.T) {
	m, kb := newDefaultMatcher(t)

	for _, f := range kb.ListFaqs() {
		for _, input := range []string{f.Question, strings.ToUpper(f.Question), "  " + strings.ToLower(f.Question) + " "} {
			got := m.Match(input)
			want := Result{Kind: KindFaq, Question: f.Question, Answer: f.Answer}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", input, diff)
			}
		}
	}
}

func TestMatch_ProgramsQuestion(t *testing.T) {
	m, kb := newDefaultMatcher(t)

	got := m.Match("What programs does Iron Lady offer?")
	assert.Equal(t, KindFaq, got.Kind)
	assert.Equal(t, kb.ListFaqs()[0].Answer, got.Answer)
}

func TestMatch_SingleTokenQuery(t *testing.T) {
	m, kb := newDefaultMatcher(t)

	got := m.Match("who")
	assert.Equal(t, KindFaq, got.Kind)
	assert.Equal(t, "Who are the mentors/coaches?", got.Question)
	assert.Equal(t, kb.ListFaqs()[4].Answer, got.Answer)
}

func TestMatch_TieGoesToFirstDeclaredCategory(t *testing.T) {
	m, kb := newDefaultMatcher(t)

	got := m.Match("how long is the course")
	require.Equal(t, KindCategory, got.Kind)
	assert.Equal(t, "programs", got.Category)

	want, err := kb.AnswerForCategory("programs")
	require.NoError(t, err)
	assert.Equal(t, want, got.Answer)
}

func TestMatch_HigherCategoryScoreWins(t *testing.T) {
	m, _ := newDefaultMatcher(t)

	got := m.Match("certificate and certification online")
	require.Equal(t, KindCategory, got.Kind)
	assert.Equal(t, "certificates", got.Category)
}

func TestMatch_SingleCategoryKeywords(t *testing.T) {
	m, kb := newDefaultMatcher(t)

	tests := []struct {
		input    string
		category string
	}{
		{"venue address please", "location"},
		{"training course", "programs"},
		{"virtual mode", "delivery"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := m.Match(tt.input)
			require.Equal(t, KindCategory, got.Kind)
			assert.Equal(t, tt.category, got.Category)

			answer, err := kb.AnswerForCategory(tt.category)
			require.NoError(t, err)
			assert.Equal(t, answer, got.Answer)
		})
	}
}

func TestMatch_CategoryKeywordsMayAlsoHitFaq(t *testing.T) {
	m, kb := newDefaultMatcher(t)

	// Both words overlap the mentors question, which carries the same answer
	// as the mentors category.
	got := m.Match("mentor coach")
	answer, err := kb.AnswerForCategory("mentors")
	require.NoError(t, err)
	assert.Equal(t, answer, got.Answer)
}

func TestMatch_NoMatch(t *testing.T) {
	m, _ := newDefaultMatcher(t)

	for _, input := range []string{"banana", "", "   ", "?!", "xyz qrs"} {
		got := m.Match(input)
		assert.Equal(t, Result{Kind: KindNoMatch}, got, "input %q", input)
	}
}

func TestMatch_Idempotent(t *testing.T) {
	m, _ := newDefaultMatcher(t)

	for _, input := range []string{
		"What programs does Iron Lady offer?",
		"how long is the course",
		"banana",
		"is it online",
		"where is the venue",
	} {
		assert.Equal(t, m.Match(input), m.Match(input), "input %q", input)
	}
}

type brokenSource struct{}

func (brokenSource) ListFaqs() []models.FaqEntry {
	return []models.FaqEntry{{Question: "q", Answer: "a"}}
}

func (brokenSource) Categories() []models.KeywordCategory {
	return []models.KeywordCategory{{Name: "ghost", Keywords: []string{"boo"}}}
}

func (brokenSource) AnswerForCategory(name string) (string, error) {
	return "", knowledge.ErrNotFound
}

type punctuationSource struct{}

func (punctuationSource) ListFaqs() []models.FaqEntry {
	return []models.FaqEntry{{Question: "???", Answer: "should never be picked"}}
}

func (punctuationSource) Categories() []models.KeywordCategory { return nil }

func (punctuationSource) AnswerForCategory(string) (string, error) {
	return "", knowledge.ErrNotFound
}

func TestMatch_PunctuationNeverMatchesExactly(t *testing.T) {
	m, err := New(punctuationSource{})
	require.NoError(t, err)

	for _, input := range []string{"?!", "...", "???"} {
		assert.Equal(t, Result{Kind: KindNoMatch}, m.Match(input), "input %q", input)
	}
}

func TestNew_UnresolvableCategory(t *testing.T) {
	_, err := New(brokenSource{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, knowledge.ErrNotFound))
	assert.Contains(t, err.Error(), "ghost")
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"who", "are", "the", "mentors", "coaches"}, Tokenize("who are the mentors/coaches?"))
	assert.Equal(t, []string{"how", "long", "the", "course"}, Tokenize("how long is the course"))
	assert.Empty(t, Tokenize("is it ok"))
	assert.Empty(t, Tokenize(""))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "faq", KindFaq.String())
	assert.Equal(t, "category", KindCategory.String())
	assert.Equal(t, "no_match", KindNoMatch.String())
}
