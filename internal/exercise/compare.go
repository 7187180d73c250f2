package exercise

import "strings"

// Comparison is the verdict for a learner's token sequence.
type Comparison struct {
	IsCorrect bool `json:"is_correct"`

	// Differences lists every position where the learner's token differs
	// from the expected one, including positions past the end of the
	// shorter sequence.
	Differences []int `json:"differences"`
}

// Compare walks both sequences position by position. A missing token on
// either side compares as the empty string. Case is ignored unless
// caseSensitive is set. The answer is correct only when both sequences have
// the same length and no position differs.
func Compare(user, correct []string, caseSensitive bool) Comparison {
	n := max(len(user), len(correct))
	diffs := make([]int, 0)
	for i := 0; i < n; i++ {
		got := tokenAt(user, i)
		want := tokenAt(correct, i)
		if !caseSensitive {
			got = strings.ToLower(got)
			want = strings.ToLower(want)
		}
		if got != want {
			diffs = append(diffs, i)
		}
	}
	return Comparison{
		IsCorrect:   len(diffs) == 0 && len(user) == len(correct),
		Differences: diffs,
	}
}

func tokenAt(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}
