package exercise

import "testing"

func TestHashString(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"abc", 96354},
		{"q1", 3552},
		{"q1session-1", 1623471910},
		{"tiger-1s-42", 727166779},
		{"héllo", 103094734},
		{"😀", 1772899},
	}
	for _, tt := range tests {
		if got := hashString(tt.in); got != tt.want {
			t.Errorf("hashString(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDeriveSeed(t *testing.T) {
	if got := DeriveSeed("q1", "session-1"); got != 1623471910 {
		t.Errorf("got %d, want 1623471910", got)
	}
	if DeriveSeed("tiger-1", "s-42") != DeriveSeed("tiger-1", "s-42") {
		t.Error("same pair should give the same seed")
	}
}

func TestDeriveSeed_NonNegative(t *testing.T) {
	ids := []string{"a", "question-with-a-long-identifier", "Ωμέγα", "🦁🐯", "x-999999"}
	for _, q := range ids {
		for _, s := range ids {
			if got := DeriveSeed(q, s); got < 0 {
				t.Errorf("DeriveSeed(%q, %q) = %d, want non-negative", q, s, got)
			}
		}
	}
}

func TestDeriveSeed_EmptySessionFallsBack(t *testing.T) {
	if got := DeriveSeed("q1", ""); got < 0 {
		t.Errorf("got %d, want non-negative", got)
	}
}
