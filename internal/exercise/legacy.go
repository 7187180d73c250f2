package exercise

import "strings"

// LegacyScramble is the older arrange-words shape: a scrambled word list and
// the sentence it should form.
type LegacyScramble struct {
	ID              string   `json:"id,omitempty" yaml:"id,omitempty"`
	Scrambled       []string `json:"scrambled" yaml:"scrambled"`
	CorrectSentence string   `json:"correctSentence" yaml:"correctSentence"`
}

// LegacyFillBlank is the older fill-blank shape: a question with blanks, the
// answer (comma separated when there are several blanks) and its options.
type LegacyFillBlank struct {
	ID            string   `json:"id,omitempty" yaml:"id,omitempty"`
	Question      string   `json:"question" yaml:"question"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correctAnswer"`
	Options       []string `json:"options" yaml:"options"`
}

// FromLegacyScramble converts a scramble payload. Each scrambled entry is run
// through the tokenizer, so an entry like "lion." contributes two tokens.
func FromLegacyScramble(l LegacyScramble) *ArrangeWords {
	var bank []string
	for _, entry := range l.Scrambled {
		bank = append(bank, Tokenize(entry)...)
	}
	return &ArrangeWords{
		ID:       l.ID,
		Tokens:   Tokenize(l.CorrectSentence),
		WordBank: bank,
		Answer:   strings.TrimSpace(l.CorrectSentence),
	}
}

// FromLegacyFillBlank converts a fill-blank payload. When no options are
// given the word bank is the answer tokens themselves.
func FromLegacyFillBlank(l LegacyFillBlank) *FillBlanks {
	tokens := splitAnswer(l.CorrectAnswer)

	var bank []string
	for _, opt := range l.Options {
		bank = append(bank, splitAnswer(opt)...)
	}
	if len(bank) == 0 {
		bank = append(bank, tokens...)
	}

	return &FillBlanks{
		ID:       l.ID,
		Template: l.Question,
		Tokens:   tokens,
		WordBank: bank,
	}
}

func splitAnswer(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
