package exercise

import (
	"strings"
	"testing"
)

func colorQuestion() *MultipleChoice {
	return &MultipleChoice{
		ID:      "mc-1",
		Prompt:  "Which word is a color?",
		Choices: []string{"Apple", "Blue", "Run"},
		Answer:  "Blue",
	}
}

func TestValidateMultipleChoice(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(q *MultipleChoice)
		wantValid bool
	}{
		{"valid", func(q *MultipleChoice) {}, true},
		{"too few choices", func(q *MultipleChoice) { q.Choices = []string{"Blue"} }, false},
		{"too many choices", func(q *MultipleChoice) {
			q.Choices = []string{"Blue", "a", "b", "c", "d", "e", "f"}
		}, false},
		{"duplicate choices", func(q *MultipleChoice) { q.Choices = []string{"Blue", "blue", "Red"} }, false},
		{"empty choice", func(q *MultipleChoice) { q.Choices = []string{"Blue", " ", "Red"} }, false},
		{"answer not a choice", func(q *MultipleChoice) { q.Answer = "Green" }, false},
		{"answer case differs", func(q *MultipleChoice) { q.Answer = "blue" }, true},
		{"prompt too long", func(q *MultipleChoice) { q.Prompt = strings.Repeat("a", MaxPromptLen+1) }, false},
		{"missing prompt", func(q *MultipleChoice) { q.Prompt = "" }, false},
		{"bad difficulty only warns", func(q *MultipleChoice) { q.Difficulty = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := colorQuestion()
			tt.mutate(q)
			findings := ValidateMultipleChoice(q)
			if got := IsQuestionValid(findings); got != tt.wantValid {
				t.Errorf("valid = %v, want %v (findings %v)", got, tt.wantValid, findings)
			}
		})
	}
}

func TestValidateTrueFalse(t *testing.T) {
	valid := &TrueFalse{ID: "tf-1", Statement: "Cats can fly.", Answer: false}
	if findings := ValidateTrueFalse(valid); len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}

	if IsQuestionValid(ValidateTrueFalse(&TrueFalse{ID: "tf-2"})) {
		t.Error("missing statement should block")
	}

	warn := &TrueFalse{ID: "tf-3", Statement: "cats can fly"}
	findings := ValidateTrueFalse(warn)
	if !IsQuestionValid(findings) || len(findings) != 2 {
		t.Errorf("expected two warnings, got %v", findings)
	}
}

func TestCheckChoice(t *testing.T) {
	q := colorQuestion()
	tests := []struct {
		input string
		want  bool
	}{
		{"2", true},
		{" 2 ", true},
		{"1", false},
		{"0", false},
		{"4", false},
		{"Blue", true},
		{"BLUE", true},
		{"Apple", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := CheckChoice(q, tt.input); got != tt.want {
			t.Errorf("CheckChoice(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCheckTrueFalse(t *testing.T) {
	q := &TrueFalse{ID: "tf", Statement: "The sun is hot.", Answer: true}
	for _, in := range []string{"true", "T", "yes", " Y "} {
		if !CheckTrueFalse(q, in) {
			t.Errorf("CheckTrueFalse(%q) = false, want true", in)
		}
	}
	for _, in := range []string{"false", "no", "maybe", ""} {
		if CheckTrueFalse(q, in) {
			t.Errorf("CheckTrueFalse(%q) = true, want false", in)
		}
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		q    Question
		want string
	}{
		{tigerQuestion(), "A tiger is stronger than a lion."},
		{fillQuestion(), "I went to school yesterday."},
		{colorQuestion(), "Blue"},
		{&TrueFalse{Answer: true}, "True"},
		{&TrueFalse{Answer: false}, "False"},
	}
	for _, tt := range tests {
		if got := Canonical(tt.q); got != tt.want {
			t.Errorf("Canonical(%T) = %q, want %q", tt.q, got, tt.want)
		}
	}
}
