package summary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/certificate"
	"github.com/abhisek/wordiz/internal/exercise"
	prac "github.com/abhisek/wordiz/internal/practice"
	"github.com/abhisek/wordiz/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testResult() Result {
	return Result{
		SessionID: "s-1",
		Learner:   "Sam",
		Source:    "Starter Pack",
		Score:     prac.Score{Correct: 7, Answered: 9, Total: 9},
		Elapsed:   95 * time.Second,
		Mistakes: []Mistake{
			{Kind: exercise.KindArrangeWords, Expected: "A tiger is stronger than a lion.", Given: "A lion is stronger than a tiger."},
			{Kind: exercise.KindTrueFalse, Expected: "False", Given: "True"},
		},
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(), Deps{})
	if s.Title() != "Well Done" {
		t.Errorf("Title = %q, want %q", s.Title(), "Well Done")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult(), Deps{})
	view := s.View(80, 24)
	for _, want := range []string{"7 of 9 correct", "77%", "1:35", "A tiger is stronger than a lion.", "Great work!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Unanswered(t *testing.T) {
	r := testResult()
	r.Score.Answered = 5
	view := New(r, Deps{}).View(80, 24)
	if !strings.Contains(view, "Not answered: 4") {
		t.Error("expected unanswered count in view")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testResult(), Deps{})
		_, cmd := s.Update(specialKey(key))
		if cmd == nil {
			t.Fatalf("expected a command on key %v", key)
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("key %v: expected PopToRootMsg", key)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult(), Deps{})
	if len(s.KeyHints()) != 1 {
		t.Errorf("KeyHints length = %d, want 1 without certificates", len(s.KeyHints()))
	}

	r, err := certificate.NewRenderer("")
	if err != nil {
		t.Fatal(err)
	}
	s = New(testResult(), Deps{Certificates: r})
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2 with certificates", len(s.KeyHints()))
	}
}

func TestSummaryScreen_CertificateDisabled(t *testing.T) {
	s := New(testResult(), Deps{})
	_, cmd := s.Update(keyPress('c'))
	if cmd != nil {
		t.Error("expected no command without a renderer")
	}
}

func TestSummaryScreen_SaveCertificate(t *testing.T) {
	r, err := certificate.NewRenderer("")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	s := New(testResult(), Deps{Certificates: r, Dir: dir, Now: fixedNow})

	_, cmd := s.Update(keyPress('c'))
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	msg := cmd()
	saved, ok := msg.(certSavedMsg)
	if !ok {
		t.Fatalf("got %T, want certSavedMsg", msg)
	}
	if saved.Err != nil {
		t.Fatalf("save failed: %v", saved.Err)
	}
	want := filepath.Join(dir, "certificate-sam-2026-10-19.png")
	if saved.Path != want {
		t.Errorf("Path = %q, want %q", saved.Path, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("certificate not written: %v", err)
	}

	s.Update(msg)
	if !strings.Contains(s.View(100, 40), "Certificate saved") {
		t.Error("expected confirmation in view")
	}
}

func TestSummaryScreen_AsksForName(t *testing.T) {
	r, err := certificate.NewRenderer("")
	if err != nil {
		t.Fatal(err)
	}
	res := testResult()
	res.Learner = ""
	s := New(res, Deps{Certificates: r, Dir: t.TempDir(), Now: fixedNow})

	_, cmd := s.Update(keyPress('c'))
	if cmd != nil {
		t.Fatal("expected the name prompt, not a save")
	}
	if !s.askingName {
		t.Fatal("expected name prompt")
	}

	// Enter with an empty name does nothing.
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("empty name should not save")
	}

	s.nameInput.SetValue("Ana Lee")
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	saved := cmd().(certSavedMsg)
	if !strings.HasSuffix(saved.Path, "certificate-ana-lee-2026-10-19.png") {
		t.Errorf("Path = %q", saved.Path)
	}
}

func TestSummaryScreen_NameCancel(t *testing.T) {
	r, _ := certificate.NewRenderer("")
	res := testResult()
	res.Learner = ""
	s := New(res, Deps{Certificates: r})

	s.Update(keyPress('c'))
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd != nil {
		t.Error("Esc in the name prompt should not leave the screen")
	}
	if s.askingName {
		t.Error("expected prompt to close")
	}
}

func TestHeadline(t *testing.T) {
	tests := map[int]string{3: "Amazing!", 2: "Great work!", 1: "Good try!", 0: "Keep practicing!"}
	for stars, want := range tests {
		if got := headline(stars); got != want {
			t.Errorf("headline(%d) = %q, want %q", stars, got, want)
		}
	}
}
