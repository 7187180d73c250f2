package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestWordBank_PickInOrder(t *testing.T) {
	w := NewWordBank([]string{"cat", "The", "sleeps", "."}, 4, "")

	// Cursor starts on "cat"; pick it, then walk to "The".
	var cmd tea.Cmd
	w, cmd = w.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("no message expected before the bank is full")
	}
	if got := w.Picked(); len(got) != 1 || got[0] != "cat" {
		t.Fatalf("Picked = %v, want [cat]", got)
	}
	if w.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1 after pick", w.Cursor)
	}

	w, _ = w.Update(specialKey(tea.KeyEnter))
	w, _ = w.Update(specialKey(tea.KeyEnter))
	w, cmd = w.Update(specialKey(tea.KeyEnter))
	if !w.Full() {
		t.Fatal("expected bank to be full")
	}
	if cmd == nil {
		t.Fatal("expected a WordBankFullMsg command")
	}
	msg, ok := cmd().(WordBankFullMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want WordBankFullMsg", cmd())
	}
	want := []string{"cat", "The", "sleeps", "."}
	for i := range want {
		if msg.Tokens[i] != want[i] {
			t.Errorf("Tokens[%d] = %q, want %q", i, msg.Tokens[i], want[i])
		}
	}
}

func TestWordBank_MoveSkipsUsed(t *testing.T) {
	w := NewWordBank([]string{"a", "b", "c"}, 3, "")
	w, _ = w.Update(specialKey(tea.KeyRight))
	w, _ = w.Update(specialKey(tea.KeyEnter)) // picks b, cursor moves to c
	if w.Cursor != 2 {
		t.Fatalf("Cursor = %d, want 2", w.Cursor)
	}
	w, _ = w.Update(specialKey(tea.KeyLeft)) // skips b
	if w.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", w.Cursor)
	}
	w, _ = w.Update(specialKey(tea.KeyLeft)) // wraps to c
	if w.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 after wrap", w.Cursor)
	}
}

func TestWordBank_Undo(t *testing.T) {
	w := NewWordBank([]string{"a", "b", "c"}, 3, "")
	w, _ = w.Update(specialKey(tea.KeyEnter))
	w, _ = w.Update(specialKey(tea.KeyEnter))
	w, _ = w.Update(specialKey(tea.KeyBackspace))

	if got := w.Picked(); len(got) != 1 || got[0] != "a" {
		t.Errorf("Picked = %v, want [a]", got)
	}
	if w.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1 (the undone chip)", w.Cursor)
	}

	w, _ = w.Update(specialKey(tea.KeyBackspace))
	w, _ = w.Update(specialKey(tea.KeyBackspace))
	if len(w.Picked()) != 0 {
		t.Errorf("Picked = %v, want empty", w.Picked())
	}
}

func TestWordBank_FillBlanksStopsAtSlots(t *testing.T) {
	w := NewWordBank([]string{"go", "went", "gone"}, 1, "I ___ home.")
	w, _ = w.Update(specialKey(tea.KeyRight))
	w, cmd := w.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected full message after the only slot is filled")
	}
	if !strings.Contains(w.AnswerView(), "went") {
		t.Errorf("AnswerView = %q, want the picked token in the template", w.AnswerView())
	}

	w, _ = w.Update(specialKey(tea.KeyRight))
	w, _ = w.Update(specialKey(tea.KeyEnter))
	if len(w.Picked()) != 1 {
		t.Errorf("Picked = %v, want no picks past the slot count", w.Picked())
	}
}

func TestWordBank_LockIgnoresInput(t *testing.T) {
	w := NewWordBank([]string{"a", "b"}, 2, "")
	w.Lock([]int{0})
	w, _ = w.Update(specialKey(tea.KeyEnter))
	if len(w.Picked()) != 0 {
		t.Error("locked bank should ignore picks")
	}
	if !w.Locked() {
		t.Error("expected Locked")
	}
}

func TestWordBank_AnswerViewShowsBlanks(t *testing.T) {
	w := NewWordBank([]string{"a", "b", "c"}, 3, "")
	w, _ = w.Update(specialKey(tea.KeyEnter))
	view := w.AnswerView()
	if strings.Count(view, "___") != 2 {
		t.Errorf("AnswerView = %q, want 2 open slots", view)
	}
}

func TestWordBank_EmptyBank(t *testing.T) {
	w := NewWordBank(nil, 0, "")
	w, cmd := w.Update(specialKey(tea.KeyRight))
	w, cmd = w.Update(specialKey(tea.KeyEnter))
	if cmd != nil || w.Full() {
		t.Error("empty bank should do nothing")
	}
}

func TestMultiChoice_NumberKey(t *testing.T) {
	m := NewMultiChoice("Pick one", []string{"red", "blue", "green"})
	m, _ = m.Update(keyPress('2'))
	if !m.Submitted() {
		t.Fatal("expected submission on number key")
	}
	if m.Value() != "blue" {
		t.Errorf("Value = %q, want blue", m.Value())
	}

	m, _ = m.Update(keyPress('1'))
	if m.Value() != "blue" {
		t.Error("submitted choice should not change")
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice("", []string{"True", "False"})
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1 (clamped)", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyEnter))
	if m.Value() != "False" {
		t.Errorf("Value = %q, want False", m.Value())
	}

	m.Reveal(0)
	if !strings.Contains(m.View(), "1)  True") {
		t.Error("view should list the options")
	}
}

func TestMultiChoice_OutOfRangeNumber(t *testing.T) {
	m := NewMultiChoice("", []string{"a", "b"})
	m, _ = m.Update(keyPress('5'))
	if m.Submitted() {
		t.Error("out of range number should not submit")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "Play"},
		{Label: "Gone", Disabled: true},
		{Label: "Quit"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestMenu_Wraps(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A"}, {Label: "B", Disabled: true}, {Label: "C"}})
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 2 {
		t.Errorf("up from top: Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 0 {
		t.Errorf("down from bottom: Selected = %d, want 0", m.Selected)
	}
}

func TestMenu_DigitShortcut(t *testing.T) {
	picked := ""
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd {
			picked = label
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item("Play"), item("History"), {Label: "Off", Disabled: true}})

	m, _ = m.Update(keyPress('2'))
	if picked != "History" || m.Selected != 1 {
		t.Errorf("picked %q at %d, want History at 1", picked, m.Selected)
	}
	picked = ""
	m.Update(keyPress('3'))
	if picked != "" {
		t.Errorf("disabled item ran: %q", picked)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "Go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(specialKey(tea.KeyEnter))
	if !ran {
		t.Error("expected action to run")
	}
}

func TestProgressBar_Filled(t *testing.T) {
	tests := []struct {
		pct  float64
		want int
	}{
		{0, 0},
		{0.5, 10},
		{1, 20},
		{1.5, 20},
		{-1, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.pct, false, 20)
		if got := p.Filled(20); got != tt.want {
			t.Errorf("Filled(%v) = %d, want %d", tt.pct, got, tt.want)
		}
	}
}

func TestStepBar_Label(t *testing.T) {
	p := NewStepBar(3, 9, 40)
	if !strings.Contains(p.View(), "3/9") {
		t.Errorf("view = %q, want label 3/9", p.View())
	}
}

func TestStars(t *testing.T) {
	s := Stars(2)
	if strings.Count(s, "★") != 2 || strings.Count(s, "☆") != 1 {
		t.Errorf("Stars(2) = %q", s)
	}
}
