package exercise

import "strings"

// noSpaceBefore lists tokens that attach to the previous token.
var noSpaceBefore = map[string]bool{
	".": true, ",": true, "?": true, "!": true, ":": true, ";": true,
	"'": true, `"`: true, ")": true,
}

// noSpaceAfter lists tokens that attach to the next token.
var noSpaceAfter = map[string]bool{
	"(": true, `"`: true, "'": true,
}

// Join rebuilds a readable sentence from tokens, inserting single spaces
// except around punctuation. Tokens starting with an apostrophe attach to
// the previous token ("do" + "n't" -> "don't").
func Join(tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && needsSpace(tokens[i-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func needsSpace(prev, tok string) bool {
	if noSpaceBefore[tok] || strings.HasPrefix(tok, "'") {
		return false
	}
	return !noSpaceAfter[prev]
}
