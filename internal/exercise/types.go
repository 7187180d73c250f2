package exercise

// Kind identifies the shape of an exercise question.
type Kind string

const (
	KindArrangeWords   Kind = "arrange_words"
	KindFillBlanks     Kind = "fill_blanks"
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
)

// Question is implemented by every exercise shape in this package.
// The set is closed: callers dispatch with a type switch.
type Question interface {
	// QuestionID returns the stable identifier of the question.
	QuestionID() string

	// Kind returns the question shape.
	Kind() Kind

	isQuestion()
}

// ArrangeWords asks the learner to reorder a full token sequence into a sentence.
type ArrangeWords struct {
	ID string

	// Tokens is the correct token sequence, e.g. ["A", "tiger", "is", "."].
	Tokens []string

	// WordBank is the pool of tokens offered to the learner (unshuffled).
	WordBank []string

	// Answer is the canonical, correctly spaced sentence.
	Answer string

	Explanation string
	Translation string

	// Difficulty is 1-5, or 0 when unknown.
	Difficulty int
}

// FillBlanks asks the learner to supply only the blanked tokens of a template.
type FillBlanks struct {
	ID string

	// Template is the sentence with one "___" placeholder per blank,
	// e.g. "I ___ to school yesterday."
	Template string

	// Tokens holds the correct token for each blank, in order.
	Tokens []string

	// WordBank is the pool of tokens offered to the learner. It may contain
	// distractors in addition to the required tokens.
	WordBank []string

	Explanation string
	Translation string
	Difficulty  int
}

// MultipleChoice asks the learner to pick one of a few options.
type MultipleChoice struct {
	ID          string
	Prompt      string
	Choices     []string
	Answer      string
	Explanation string
	Difficulty  int
}

// TrueFalse asks the learner whether a statement is true.
type TrueFalse struct {
	ID          string
	Statement   string
	Answer      bool
	Explanation string
	Difficulty  int
}

func (q *ArrangeWords) QuestionID() string   { return q.ID }
func (q *FillBlanks) QuestionID() string     { return q.ID }
func (q *MultipleChoice) QuestionID() string { return q.ID }
func (q *TrueFalse) QuestionID() string      { return q.ID }

func (q *ArrangeWords) Kind() Kind   { return KindArrangeWords }
func (q *FillBlanks) Kind() Kind     { return KindFillBlanks }
func (q *MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (q *TrueFalse) Kind() Kind      { return KindTrueFalse }

func (*ArrangeWords) isQuestion()   {}
func (*FillBlanks) isQuestion()     {}
func (*MultipleChoice) isQuestion() {}
func (*TrueFalse) isQuestion()      {}

// UsesWordBank reports whether the question is answered by picking tokens
// from a shuffled word bank.
func UsesWordBank(q Question) bool {
	switch q.(type) {
	case *ArrangeWords, *FillBlanks:
		return true
	}
	return false
}

// CorrectTokens returns the expected token sequence for word-bank questions,
// or nil for choice questions.
func CorrectTokens(q Question) []string {
	switch q := q.(type) {
	case *ArrangeWords:
		return q.Tokens
	case *FillBlanks:
		return q.Tokens
	}
	return nil
}

// BankTokens returns the unshuffled word bank for word-bank questions.
func BankTokens(q Question) []string {
	switch q := q.(type) {
	case *ArrangeWords:
		return q.WordBank
	case *FillBlanks:
		return q.WordBank
	}
	return nil
}

// Canonical returns the fully formed correct answer, suitable for a
// "show correct answer" display.
func Canonical(q Question) string {
	switch q := q.(type) {
	case *ArrangeWords:
		return Join(q.Tokens)
	case *FillBlanks:
		return Fill(q.Template, q.Tokens)
	case *MultipleChoice:
		return q.Answer
	case *TrueFalse:
		if q.Answer {
			return "True"
		}
		return "False"
	}
	return ""
}

// ExplanationOf returns the optional explanation attached to a question.
func ExplanationOf(q Question) string {
	switch q := q.(type) {
	case *ArrangeWords:
		return q.Explanation
	case *FillBlanks:
		return q.Explanation
	case *MultipleChoice:
		return q.Explanation
	case *TrueFalse:
		return q.Explanation
	}
	return ""
}
