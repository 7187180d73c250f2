package exercisegen

import "github.com/abhisek/wordiz/internal/exercise"

// repairWordBank replaces the word bank of an arrange-words question with a
// copy of its tokens when every blocking finding concerns the word bank. It
// mutates q and reports whether it did.
func repairWordBank(q exercise.Question, findings []exercise.ValidationError) (exercise.Question, bool) {
	aw, ok := q.(*exercise.ArrangeWords)
	if !ok {
		return q, false
	}

	blocking := exercise.Errors(findings)
	if len(blocking) == 0 {
		return q, false
	}
	for _, f := range blocking {
		if f.Field != "word_bank" {
			return q, false
		}
	}

	aw.WordBank = append([]string(nil), aw.Tokens...)
	return aw, true
}
