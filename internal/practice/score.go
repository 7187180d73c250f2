package practice

// Score is the running tally of a session. Only first attempts count.
type Score struct {
	Correct  int `json:"correct"`
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// Percent returns Correct out of Total as 0-100, rounded down.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Correct * 100 / s.Total
}

// Stars awards 0-3 stars for the share of first-try correct answers.
func (s Score) Stars() int {
	return StarsFor(s.Percent())
}

// Star thresholds in percent.
const (
	ThreeStarPercent = 90
	TwoStarPercent   = 70
	OneStarPercent   = 40
)

// StarsFor maps a percentage to 0-3 stars.
func StarsFor(percent int) int {
	switch {
	case percent >= ThreeStarPercent:
		return 3
	case percent >= TwoStarPercent:
		return 2
	case percent >= OneStarPercent:
		return 1
	}
	return 0
}

// Complete reports whether every question has been answered.
func (s Score) Complete() bool {
	return s.Total > 0 && s.Answered == s.Total
}
