package followup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest_ProgramBucket(t *testing.T) {
	got := New().Suggest("Tell me about the training")
	assert.Equal(t, []string{
		"What is the program duration?",
		"Is the program online or offline?",
		"Are certificates provided?",
	}, got)
}

func TestSuggest_MentorBucket(t *testing.T) {
	got := New().Suggest("Who is my COACH?")
	assert.Equal(t, []string{
		"What programs does Iron Lady offer?",
		"Where are offline programs held?",
	}, got)
}

func TestSuggest_CapsAndDeduplicates(t *testing.T) {
	got := New().Suggest("certificate from a mentor")
	assert.Equal(t, []string{
		"What programs does Iron Lady offer?",
		"Where are offline programs held?",
		"What is the program duration?",
	}, got)
	assert.LessOrEqual(t, len(New().Suggest("program mentor certificate")), MaxSuggestions)
}

func TestSuggest_None(t *testing.T) {
	assert.Empty(t, New().Suggest("banana"))
	assert.Empty(t, New().Suggest(""))
}

func TestSuggest_CustomBuckets(t *testing.T) {
	s := New(Bucket{Topic: "fees", Triggers: []string{"fee"}, Suggestions: []string{"Is there an EMI option?"}})
	assert.Equal(t, []string{"Is there an EMI option?"}, s.Suggest("what is the fee"))
	assert.Empty(t, s.Suggest("program"))
}
