package exercise

import (
	"strings"
	"unicode"
)

// isSplitPunct reports whether r is emitted as a standalone token.
func isSplitPunct(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':':
		return true
	}
	return false
}

// Tokenize splits a sentence into word and punctuation tokens.
//
// Whitespace separates words and is discarded. Each of . , ! ? ; : becomes
// its own token. Every other character, apostrophes included, belongs to the
// surrounding word, so "don't" stays a single token.
func Tokenize(sentence string) []string {
	var (
		tokens []string
		word   strings.Builder
	)
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	for _, r := range sentence {
		switch {
		case unicode.IsSpace(r):
			flush()
		case isSplitPunct(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			word.WriteRune(r)
		}
	}
	flush()

	return tokens
}
