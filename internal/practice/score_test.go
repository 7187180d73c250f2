package practice

import "testing"

func TestStarsFor(t *testing.T) {
	tests := []struct {
		percent int
		want    int
	}{
		{100, 3}, {90, 3}, {89, 2}, {70, 2}, {69, 1}, {40, 1}, {39, 0}, {0, 0},
	}
	for _, tt := range tests {
		if got := StarsFor(tt.percent); got != tt.want {
			t.Errorf("StarsFor(%d) = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestScore_Percent(t *testing.T) {
	tests := []struct {
		score Score
		want  int
	}{
		{Score{}, 0},
		{Score{Correct: 2, Answered: 3, Total: 3}, 66},
		{Score{Correct: 3, Answered: 3, Total: 4}, 75},
	}
	for _, tt := range tests {
		if got := tt.score.Percent(); got != tt.want {
			t.Errorf("%+v.Percent() = %d, want %d", tt.score, got, tt.want)
		}
	}
	if (Score{Answered: 3, Total: 4}).Complete() {
		t.Error("expected incomplete")
	}
	if (Score{}).Complete() {
		t.Error("empty score should not be complete")
	}
}
