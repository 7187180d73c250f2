package exercise

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidateMultipleChoice checks a multiple-choice question.
func ValidateMultipleChoice(q *MultipleChoice) []ValidationError {
	if q == nil {
		return []ValidationError{errorf("question", "question is nil")}
	}

	var findings []ValidationError
	if strings.TrimSpace(q.ID) == "" {
		findings = append(findings, errorf("id", "id is required"))
	}
	if strings.TrimSpace(q.Prompt) == "" {
		findings = append(findings, errorf("prompt", "prompt is required"))
	}
	if strings.TrimSpace(q.Answer) == "" {
		findings = append(findings, errorf("answer", "answer is required"))
	}
	if len(findings) > 0 {
		return findings
	}

	if n := utf8.RuneCountInString(q.Prompt); n > MaxPromptLen {
		findings = append(findings, errorf("prompt",
			"prompt has %d characters, limit is %d", n, MaxPromptLen))
	}

	if len(q.Choices) < MinChoices || len(q.Choices) > MaxChoices {
		findings = append(findings, errorf("choices",
			"got %d choices, want %d-%d", len(q.Choices), MinChoices, MaxChoices))
	}

	seen := make(map[string]bool, len(q.Choices))
	matches := 0
	for i, c := range q.Choices {
		norm := strings.ToLower(strings.TrimSpace(c))
		if norm == "" {
			findings = append(findings, errorf("choices", "choice %d is empty", i+1))
			continue
		}
		if seen[norm] {
			findings = append(findings, errorf("choices", "duplicate choice %q", c))
		}
		seen[norm] = true
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(q.Answer)) {
			matches++
		}
	}
	if matches != 1 {
		findings = append(findings, errorf("answer",
			"answer %q matches %d choices, want exactly 1", q.Answer, matches))
	}

	findings = append(findings, checkMetadata(q.Difficulty, q.Explanation)...)
	return findings
}

// ValidateTrueFalse checks a true/false question.
func ValidateTrueFalse(q *TrueFalse) []ValidationError {
	if q == nil {
		return []ValidationError{errorf("question", "question is nil")}
	}

	var findings []ValidationError
	if strings.TrimSpace(q.ID) == "" {
		findings = append(findings, errorf("id", "id is required"))
	}
	if strings.TrimSpace(q.Statement) == "" {
		findings = append(findings, errorf("statement", "statement is required"))
	}
	if len(findings) > 0 {
		return findings
	}

	findings = append(findings, checkGrammar("statement", q.Statement)...)
	findings = append(findings, checkMetadata(q.Difficulty, q.Explanation)...)
	return findings
}

// CheckChoice reports whether input selects the correct choice. Input may be
// a 1-based index or the choice text, compared case-insensitively.
func CheckChoice(q *MultipleChoice, input string) bool {
	input = strings.TrimSpace(input)
	if idx, err := strconv.Atoi(input); err == nil {
		if idx < 1 || idx > len(q.Choices) {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(q.Choices[idx-1]), strings.TrimSpace(q.Answer))
	}
	return strings.EqualFold(input, strings.TrimSpace(q.Answer))
}

// ParseBool accepts the spellings a learner might type for true or false.
func ParseBool(input string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "true", "t", "yes", "y":
		return true, true
	case "false", "f", "no", "n":
		return false, true
	}
	return false, false
}

// CheckTrueFalse reports whether input matches the statement's truth value.
// Unrecognised input is never correct.
func CheckTrueFalse(q *TrueFalse, input string) bool {
	v, ok := ParseBool(input)
	return ok && v == q.Answer
}
