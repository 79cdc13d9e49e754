package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenLen is the shortest token kept by Tokenize. Two-letter words are
// treated as noise.
const minTokenLen = 3

// Normalize lower-cases and trims s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Tokenize splits s on anything that is not a letter or digit and keeps
// tokens of at least minTokenLen runes.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, isSeparator)
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// canonical collapses punctuation and whitespace so that "Who are the
// mentors/coaches?" and "who are the mentors coaches" compare equal.
func canonical(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSeparator), " ")
}
