package exercise

import "testing"

func TestCountBlanks(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"no blanks here", 0},
		{"a __ b", 0},
		{"I ___ it.", 1},
		{"I _______ it.", 1},
		{"___ and ___", 2},
	}
	for _, tt := range tests {
		if got := CountBlanks(tt.in); got != tt.want {
			t.Errorf("CountBlanks(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFill(t *testing.T) {
	tests := []struct {
		template string
		tokens   []string
		want     string
	}{
		{"I ___ to school.", []string{"went"}, "I went to school."},
		{"___ is ___.", []string{"It", "red"}, "It is red."},
		{"___ is ___.", []string{"It"}, "It is ___."},
		{"No blanks.", []string{"x"}, "No blanks."},
	}
	for _, tt := range tests {
		if got := Fill(tt.template, tt.tokens); got != tt.want {
			t.Errorf("Fill(%q, %q) = %q, want %q", tt.template, tt.tokens, got, tt.want)
		}
	}
}

func TestReplaceBlanks(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"I ___ happy.", "I blank happy."},
		{"She _____ to ___.", "She blank to blank."},
		{"No blanks here.", "No blanks here."},
		{"Two __ underscores.", "Two __ underscores."},
	}
	for _, tt := range tests {
		if got := ReplaceBlanks(tt.in, "blank"); got != tt.want {
			t.Errorf("ReplaceBlanks(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
