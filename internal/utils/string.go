package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CapitalizeWords uppercases the first letter of every whitespace separated
// word and leaves everything else as typed, so "new york" becomes "New York"
// and "saint-jean" stays "Saint-jean".
func CapitalizeWords(q string) string {
	if q == "" {
		return q
	}
	upper := cases.Upper(language.Und)

	var b strings.Builder
	b.Grow(len(q))
	wordStart := true
	for _, r := range q {
		switch {
		case unicode.IsSpace(r):
			wordStart = true
			b.WriteRune(r)
		case wordStart:
			wordStart = false
			b.WriteString(upper.String(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
