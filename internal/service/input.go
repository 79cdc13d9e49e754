package service

import (
	"strings"
	"unicode"
)

// cleanInput prepares raw chat text for matching: invalid UTF-8 is dropped,
// control characters other than newline and tab are removed and the result
// is trimmed.
func cleanInput(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
