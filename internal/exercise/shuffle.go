package exercise

import "slices"

// DefaultMaxShuffleAttempts bounds ShuffleWithGuard when no limit is given.
const DefaultMaxShuffleAttempts = 10

// Shuffle returns a Fisher-Yates permutation of tokens driven by a seeded
// RNG. The input slice is never modified.
func Shuffle(tokens []string, seed int64) []string {
	out := slices.Clone(tokens)
	rng := NewRNG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rng() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleWithGuard shuffles tokens and retries with seed+1, seed+2, ... while
// the result is identical to the input, making at most maxAttempts shuffles
// in total (DefaultMaxShuffleAttempts when maxAttempts <= 0). If every
// attempt reproduces the input order, that order is returned as is; inputs
// with fewer than two tokens always come back unchanged.
func ShuffleWithGuard(tokens []string, seed int64, maxAttempts int) []string {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxShuffleAttempts
	}
	out := Shuffle(tokens, seed)
	for attempt := 1; attempt < maxAttempts && slices.Equal(out, tokens); attempt++ {
		out = Shuffle(tokens, seed+int64(attempt))
	}
	return out
}

// WordBankFor derives the shuffled word bank a learner sees for a question
// in a given session. The result is stable for a fixed (question, session)
// pair; callers are expected to memoize it for the session.
func WordBankFor(q Question, sessionID string) []string {
	bank := BankTokens(q)
	if len(bank) == 0 {
		return nil
	}
	return ShuffleWithGuard(bank, DeriveSeed(q.QuestionID(), sessionID), DefaultMaxShuffleAttempts)
}
