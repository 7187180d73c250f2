package exercise

import "regexp"

// blankPattern matches one blank placeholder. Runs longer than three
// underscores still count as a single blank.
var blankPattern = regexp.MustCompile(`_{3,}`)

// Blank is the placeholder written into fill-blanks templates.
const Blank = "___"

// CountBlanks returns the number of placeholders in a template.
func CountBlanks(template string) int {
	return len(blankPattern.FindAllStringIndex(template, -1))
}

// Fill substitutes tokens into the template's blanks in order. Blanks
// without a matching token are left in place.
func Fill(template string, tokens []string) string {
	i := 0
	return blankPattern.ReplaceAllStringFunc(template, func(m string) string {
		if i >= len(tokens) {
			return m
		}
		tok := tokens[i]
		i++
		return tok
	})
}

// ReplaceBlanks replaces every placeholder, whatever its length, with s.
func ReplaceBlanks(template, s string) string {
	return blankPattern.ReplaceAllLiteralString(template, s)
}
