package exercise

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Severity classifies a validation finding.
type Severity string

const (
	// SeverityError blocks a question from being shown.
	SeverityError Severity = "error"

	// SeverityWarning is cosmetic and never blocks.
	SeverityWarning Severity = "warning"
)

// Limits applied by the validators.
const (
	MinChoices        = 2
	MaxChoices        = 6
	MaxPromptLen      = 500
	MaxExplanationLen = 1000
	MaxDifficulty     = 5
)

// ValidationError is a single finding produced by a validator. It is a value,
// not a Go error: validators collect findings instead of failing.
type ValidationError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (v ValidationError) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Severity, v.Field, v.Message)
}

func errorf(field, format string, args ...any) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func warnf(field, format string, args ...any) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

// IsQuestionValid reports whether findings contain no blocking errors.
func IsQuestionValid(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns only the blocking findings.
func Errors(findings []ValidationError) []ValidationError {
	var out []ValidationError
	for _, f := range findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Validate runs the validator matching the concrete question type.
func Validate(q Question) []ValidationError {
	switch q := q.(type) {
	case *ArrangeWords:
		return ValidateArrangeWords(q)
	case *FillBlanks:
		return ValidateFillBlanks(q)
	case *MultipleChoice:
		return ValidateMultipleChoice(q)
	case *TrueFalse:
		return ValidateTrueFalse(q)
	}
	return []ValidationError{errorf("type", "unsupported question type %T", q)}
}

// ValidateArrangeWords checks an arrange-words question. Required fields are
// checked first; when any is missing no further checks run.
func ValidateArrangeWords(q *ArrangeWords) []ValidationError {
	if q == nil {
		return []ValidationError{errorf("question", "question is nil")}
	}

	var findings []ValidationError
	if strings.TrimSpace(q.ID) == "" {
		findings = append(findings, errorf("id", "id is required"))
	}
	if len(q.Tokens) == 0 {
		findings = append(findings, errorf("tokens", "tokens are required"))
	}
	if len(q.WordBank) == 0 {
		findings = append(findings, errorf("word_bank", "word bank is required"))
	}
	if strings.TrimSpace(q.Answer) == "" {
		findings = append(findings, errorf("sentence", "answer sentence is required"))
	}
	if len(findings) > 0 {
		return findings
	}

	findings = append(findings, checkBankCoverage(q.Tokens, q.WordBank)...)

	if joined := Join(q.Tokens); !strings.EqualFold(joined, q.Answer) {
		findings = append(findings, errorf("sentence",
			"joined tokens %q do not match answer %q", joined, q.Answer))
	}

	findings = append(findings, checkGrammar("sentence", q.Answer)...)

	if len(q.WordBank) != len(q.Tokens) {
		findings = append(findings, errorf("word_bank",
			"word bank has %d tokens, want %d", len(q.WordBank), len(q.Tokens)))
	}

	findings = append(findings, checkMetadata(q.Difficulty, q.Explanation)...)
	return findings
}

// ValidateFillBlanks checks a fill-blanks question. The word bank may carry
// distractors, so only coverage is checked, not its length.
func ValidateFillBlanks(q *FillBlanks) []ValidationError {
	if q == nil {
		return []ValidationError{errorf("question", "question is nil")}
	}

	var findings []ValidationError
	if strings.TrimSpace(q.ID) == "" {
		findings = append(findings, errorf("id", "id is required"))
	}
	if strings.TrimSpace(q.Template) == "" {
		findings = append(findings, errorf("template", "template is required"))
	}
	if len(q.Tokens) == 0 {
		findings = append(findings, errorf("tokens", "tokens are required"))
	}
	if len(q.WordBank) == 0 {
		findings = append(findings, errorf("word_bank", "word bank is required"))
	}
	if len(findings) > 0 {
		return findings
	}

	blanks := CountBlanks(q.Template)
	if blanks != len(q.Tokens) {
		findings = append(findings, errorf("template",
			"template has %d blanks but %d tokens were given", blanks, len(q.Tokens)))
	}

	findings = append(findings, checkBankCoverage(q.Tokens, q.WordBank)...)

	if blanks == len(q.Tokens) {
		findings = append(findings, checkGrammar("template", Fill(q.Template, q.Tokens))...)
	}

	findings = append(findings, checkMetadata(q.Difficulty, q.Explanation)...)
	return findings
}

// checkBankCoverage verifies that the bank holds every required token at
// least as many times as the answer needs it, ignoring case.
func checkBankCoverage(tokens, bank []string) []ValidationError {
	have := make(map[string]int, len(bank))
	for _, t := range bank {
		have[strings.ToLower(t)]++
	}
	need := make(map[string]int, len(tokens))
	var order []string
	for _, t := range tokens {
		key := strings.ToLower(t)
		if need[key] == 0 {
			order = append(order, key)
		}
		need[key]++
	}

	var findings []ValidationError
	for _, key := range order {
		if missing := need[key] - have[key]; missing > 0 {
			findings = append(findings, errorf("word_bank",
				"token %q is needed %d times but the word bank has %d (missing %d)",
				key, need[key], have[key], missing))
		}
	}
	return findings
}

func checkMetadata(difficulty int, explanation string) []ValidationError {
	var findings []ValidationError
	if difficulty < 0 || difficulty > MaxDifficulty {
		findings = append(findings, warnf("difficulty",
			"difficulty %d outside 1-%d", difficulty, MaxDifficulty))
	}
	if n := utf8.RuneCountInString(explanation); n > MaxExplanationLen {
		findings = append(findings, warnf("explanation",
			"explanation has %d characters, limit is %d", n, MaxExplanationLen))
	}
	return findings
}
