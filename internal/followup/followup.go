// Package followup suggests next questions after an answer.
package followup

import "strings"

// MaxSuggestions caps the number of suggestions returned for one message.
const MaxSuggestions = 3

// Bucket maps topic triggers to static follow-up questions.
type Bucket struct {
	Topic       string
	Triggers    []string
	Suggestions []string
}

var defaultBuckets = []Bucket{
	{
		Topic:    "program",
		Triggers: []string{"program", "course", "training"},
		Suggestions: []string{
			"What is the program duration?",
			"Is the program online or offline?",
			"Are certificates provided?",
		},
	},
	{
		Topic:    "mentor",
		Triggers: []string{"mentor", "coach", "leader"},
		Suggestions: []string{
			"What programs does Iron Lady offer?",
			"Where are offline programs held?",
		},
	},
	{
		Topic:    "certificate",
		Triggers: []string{"certificate", "certification", "certified"},
		Suggestions: []string{
			"What is the program duration?",
			"Who are the mentors/coaches?",
		},
	},
}

type Suggester struct {
	buckets []Bucket
}

// New returns a Suggester over buckets, checked in the given order. With no
// buckets the program/mentor/certificate set is used.
func New(buckets ...Bucket) *Suggester {
	if len(buckets) == 0 {
		buckets = defaultBuckets
	}
	return &Suggester{buckets: buckets}
}

// Suggest returns up to MaxSuggestions distinct follow-up questions for text.
func (s *Suggester) Suggest(text string) []string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	for _, b := range s.buckets {
		if !containsAny(normalized, b.Triggers) {
			continue
		}
		for _, q := range b.Suggestions {
			if _, dup := seen[q]; dup {
				continue
			}
			seen[q] = struct{}{}
			out = append(out, q)
			if len(out) == MaxSuggestions {
				return out
			}
		}
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
