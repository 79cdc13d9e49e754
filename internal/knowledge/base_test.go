package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/models"
)

func TestDefault(t *testing.T) {
	kb := Default()

	faqs := kb.ListFaqs()
	require.Len(t, faqs, 6)
	assert.Equal(t, "What programs does Iron Lady offer?", faqs[0].Question)

	names := make([]string, 0)
	for _, c := range kb.Categories() {
		names = append(names, c.Name)
		_, err := kb.AnswerForCategory(c.Name)
		assert.NoError(t, err, "category %s", c.Name)
	}
	assert.Equal(t, []string{"programs", "duration", "delivery", "certificates", "mentors", "location"}, names)
	assert.NotEmpty(t, kb.Welcome())
	assert.Len(t, kb.DefaultResponses(), 2)
}

func TestAnswerForCategory_NotFound(t *testing.T) {
	_, err := Default().AnswerForCategory("pricing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNew_Validation(t *testing.T) {
	valid := func() Data {
		return Data{
			Faqs:             []models.FaqEntry{{Question: "q?", Answer: "a"}},
			Categories:       []models.KeywordCategory{{Name: "c", Keywords: []string{"k"}}},
			CategoryAnswers:  map[string]string{"c": "answer"},
			DefaultResponses: []string{"hello"},
		}
	}

	_, err := New(valid())
	require.NoError(t, err)

	d := valid()
	d.Faqs = nil
	_, err = New(d)
	assert.ErrorIs(t, err, ErrEmptyFaqs)

	d = valid()
	d.CategoryAnswers = map[string]string{}
	_, err = New(d)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	d = valid()
	d.DefaultResponses = nil
	_, err = New(d)
	assert.ErrorIs(t, err, ErrNoDefaults)

	d = valid()
	d.Categories = append(d.Categories, d.Categories[0])
	_, err = New(d)
	assert.Error(t, err)

	for _, question := range []string{"", "   ", "?!", "--- ..."} {
		d = valid()
		d.Faqs = append(d.Faqs, models.FaqEntry{Question: question, Answer: "a"})
		_, err = New(d)
		assert.ErrorIs(t, err, ErrInvalidFaq, "question %q", question)
	}

	d = valid()
	d.Faqs[0].Answer = " \n"
	_, err = New(d)
	assert.ErrorIs(t, err, ErrInvalidFaq)
}

func TestBase_ReturnsCopies(t *testing.T) {
	kb := Default()

	faqs := kb.ListFaqs()
	faqs[0].Answer = "changed"
	cats := kb.Categories()
	cats[0].Keywords[0] = "changed"

	assert.NotEqual(t, "changed", kb.ListFaqs()[0].Answer)
	assert.NotEqual(t, "changed", kb.Categories()[0].Keywords[0])
}

func TestLoadFile(t *testing.T) {
	doc := `
faqs:
  - question: "Do you offer scholarships?"
    answer: "**Yes**, for selected candidates."
categories:
  - name: fees
    keywords: [fee, cost, price]
category_answers:
  fees: "Fees depend on the program."
welcome: "Hi!"
default_responses:
  - "Ask me about fees."
`
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	kb, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Do you offer scholarships?", kb.ListFaqs()[0].Question)
	assert.Equal(t, []string{"fee", "cost", "price"}, kb.Categories()[0].Keywords)
	answer, err := kb.AnswerForCategory("fees")
	require.NoError(t, err)
	assert.Equal(t, "Fees depend on the program.", answer)
	assert.Equal(t, "Hi!", kb.Welcome())
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("faqs: []\ndefault_responses: [x]\n"))
	assert.ErrorIs(t, err, ErrEmptyFaqs)

	_, err = Parse([]byte("faqs: ["))
	assert.Error(t, err)
}

func TestData_RoundTrip(t *testing.T) {
	kb := Default()
	again, err := New(kb.Data())
	require.NoError(t, err)
	assert.Equal(t, kb.ListFaqs(), again.ListFaqs())
	assert.Equal(t, kb.Categories(), again.Categories())
}
