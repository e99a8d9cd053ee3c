package sentiment

import (
	"strings"
	"unicode"
)

// lower is a tiny wrapper so lexicon code reads naturally.
func lower(s string) string { return strings.ToLower(s) }

// tokenize lower-cases the text, replaces every character that is neither a
// word character (letter, digit, underscore) nor whitespace with a space,
// collapses whitespace runs and splits into tokens. An empty token list is a
// valid result for punctuation-only input.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	return strings.Fields(cleaned)
}
