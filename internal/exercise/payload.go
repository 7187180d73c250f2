package exercise

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownShape is returned when a payload matches no known question shape.
var ErrUnknownShape = errors.New("unknown question shape")

// Payload is the flat wire form of a question as produced by the LLM, read
// from exercise packs, or posted to the API. Only the fields relevant to
// Type are used. Legacy shapes are recognised when Type is empty.
type Payload struct {
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id" yaml:"id"`

	// arrange_words
	Sentence string `json:"sentence,omitempty" yaml:"sentence,omitempty"`

	// arrange_words and fill_blanks
	Tokens   []string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	WordBank []string `json:"word_bank,omitempty" yaml:"word_bank,omitempty"`

	// fill_blanks
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// multiple_choice
	Prompt  string   `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Choices []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	Answer  string   `json:"answer,omitempty" yaml:"answer,omitempty"`

	// true_false
	Statement string `json:"statement,omitempty" yaml:"statement,omitempty"`
	IsTrue    *bool  `json:"is_true,omitempty" yaml:"is_true,omitempty"`

	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Translation string `json:"translation,omitempty" yaml:"translation,omitempty"`
	Difficulty  int    `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`

	// Legacy scramble.
	Scrambled       []string `json:"scrambled,omitempty" yaml:"scrambled,omitempty"`
	CorrectSentence string   `json:"correctSentence,omitempty" yaml:"correctSentence,omitempty"`

	// Legacy fill-blank.
	Question      string   `json:"question,omitempty" yaml:"question,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty" yaml:"correctAnswer,omitempty"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Decode maps a payload to a question. It performs no content validation;
// run Validate on the result before showing it.
func (p Payload) Decode() (Question, error) {
	switch Kind(strings.TrimSpace(p.Type)) {
	case KindArrangeWords:
		return &ArrangeWords{
			ID:          p.ID,
			Tokens:      p.Tokens,
			WordBank:    p.WordBank,
			Answer:      p.Sentence,
			Explanation: p.Explanation,
			Translation: p.Translation,
			Difficulty:  p.Difficulty,
		}, nil
	case KindFillBlanks:
		return &FillBlanks{
			ID:          p.ID,
			Template:    p.Template,
			Tokens:      p.Tokens,
			WordBank:    p.WordBank,
			Explanation: p.Explanation,
			Translation: p.Translation,
			Difficulty:  p.Difficulty,
		}, nil
	case KindMultipleChoice:
		return &MultipleChoice{
			ID:          p.ID,
			Prompt:      p.Prompt,
			Choices:     p.Choices,
			Answer:      p.Answer,
			Explanation: p.Explanation,
			Difficulty:  p.Difficulty,
		}, nil
	case KindTrueFalse:
		if p.IsTrue == nil {
			return nil, fmt.Errorf("question %q: true_false payload missing is_true", p.ID)
		}
		return &TrueFalse{
			ID:          p.ID,
			Statement:   p.Statement,
			Answer:      *p.IsTrue,
			Explanation: p.Explanation,
			Difficulty:  p.Difficulty,
		}, nil
	case "":
		return p.decodeLegacy()
	}
	return nil, fmt.Errorf("question %q: type %q: %w", p.ID, p.Type, ErrUnknownShape)
}

func (p Payload) decodeLegacy() (Question, error) {
	switch {
	case len(p.Scrambled) > 0 || p.CorrectSentence != "":
		q := FromLegacyScramble(LegacyScramble{
			ID:              p.ID,
			Scrambled:       p.Scrambled,
			CorrectSentence: p.CorrectSentence,
		})
		q.Explanation = p.Explanation
		q.Translation = p.Translation
		q.Difficulty = p.Difficulty
		return q, nil
	case p.Question != "" || p.CorrectAnswer != "":
		q := FromLegacyFillBlank(LegacyFillBlank{
			ID:            p.ID,
			Question:      p.Question,
			CorrectAnswer: p.CorrectAnswer,
			Options:       p.Options,
		})
		q.Explanation = p.Explanation
		q.Translation = p.Translation
		q.Difficulty = p.Difficulty
		return q, nil
	}
	return nil, fmt.Errorf("question %q: %w", p.ID, ErrUnknownShape)
}

// Encode returns the canonical payload for a question.
func Encode(q Question) Payload {
	switch q := q.(type) {
	case *ArrangeWords:
		return Payload{
			Type: string(KindArrangeWords), ID: q.ID, Sentence: q.Answer,
			Tokens: q.Tokens, WordBank: q.WordBank,
			Explanation: q.Explanation, Translation: q.Translation, Difficulty: q.Difficulty,
		}
	case *FillBlanks:
		return Payload{
			Type: string(KindFillBlanks), ID: q.ID, Template: q.Template,
			Tokens: q.Tokens, WordBank: q.WordBank,
			Explanation: q.Explanation, Translation: q.Translation, Difficulty: q.Difficulty,
		}
	case *MultipleChoice:
		return Payload{
			Type: string(KindMultipleChoice), ID: q.ID, Prompt: q.Prompt,
			Choices: q.Choices, Answer: q.Answer,
			Explanation: q.Explanation, Difficulty: q.Difficulty,
		}
	case *TrueFalse:
		answer := q.Answer
		return Payload{
			Type: string(KindTrueFalse), ID: q.ID, Statement: q.Statement, IsTrue: &answer,
			Explanation: q.Explanation, Difficulty: q.Difficulty,
		}
	}
	return Payload{}
}

// DeriveTokens fills in the tokens and word bank of an arrange-words
// question from its answer sentence when they are missing.
func DeriveTokens(q *ArrangeWords) {
	if len(q.Tokens) == 0 {
		q.Tokens = Tokenize(q.Answer)
	}
	if len(q.WordBank) == 0 {
		q.WordBank = append([]string(nil), q.Tokens...)
	}
}
