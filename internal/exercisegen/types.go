package exercisegen

import "github.com/abhisek/wordiz/internal/exercise"

// Level bounds, 1 being first sentences and 5 confident readers.
const (
	MinLevel = 1
	MaxLevel = 5
)

// GenerateInput holds all context needed to generate one question.
type GenerateInput struct {
	// ID is assigned to the generated question.
	ID string

	// Topic is the theme of the sentence, e.g. "animals at the zoo".
	Topic string

	// Level is the reading level, 1-5.
	Level int

	// Kind is the question shape to produce.
	Kind exercise.Kind

	// UsedSentences are sentences already in the set. The prompt asks the
	// model not to repeat them.
	UsedSentences []string

	// Feedback describes why the previous attempt was rejected, if any.
	Feedback []string
}

// SetInput describes a batch of exercises.
type SetInput struct {
	Topic string
	Level int
	Count int

	// Kinds are cycled through in order. Empty means arrange-words only.
	Kinds []exercise.Kind

	// IDPrefix prefixes generated ids ("<prefix>-1", "<prefix>-2", ...).
	// Empty means a random prefix.
	IDPrefix string
}

// SupportedKinds lists the kinds the generator can produce.
var SupportedKinds = []exercise.Kind{
	exercise.KindArrangeWords,
	exercise.KindFillBlanks,
	exercise.KindMultipleChoice,
	exercise.KindTrueFalse,
}

// IsSupportedKind reports whether k can be generated.
func IsSupportedKind(k exercise.Kind) bool {
	for _, s := range SupportedKinds {
		if s == k {
			return true
		}
	}
	return false
}
