package exercise

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var spaceBeforePunct = regexp.MustCompile(`\s[.,!?;:]`)

// checkGrammar applies light sentence heuristics. A space before punctuation
// is the only blocking finding; everything else is a warning.
func checkGrammar(field, sentence string) []ValidationError {
	var findings []ValidationError

	if strings.Contains(sentence, "  ") {
		findings = append(findings, warnf(field, "sentence contains double spaces"))
	}
	if loc := spaceBeforePunct.FindStringIndex(sentence); loc != nil {
		findings = append(findings, errorf(field,
			"space before punctuation %q", sentence[loc[1]-1:loc[1]]))
	}

	trimmed := strings.TrimSpace(sentence)
	if trimmed == "" {
		return findings
	}
	if first, _ := utf8.DecodeRuneInString(trimmed); !unicode.IsUpper(first) {
		findings = append(findings, warnf(field, "sentence should start with an uppercase letter"))
	}
	switch last, _ := utf8.DecodeLastRuneInString(trimmed); last {
	case '.', '!', '?':
	default:
		findings = append(findings, warnf(field, "sentence should end with . ! or ?"))
	}
	return findings
}
