package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// WordBankFullMsg is emitted when every slot of a word bank is filled.
type WordBankFullMsg struct {
	Tokens []string
}

// WordBank lets the learner build an answer by picking chips from a
// shuffled bank. It serves arrange-words questions, where every chip is
// used, and fill-blanks questions, where the bank may hold distractors and
// only Slots chips are picked.
type WordBank struct {
	// Bank is the shuffled pool of chips.
	Bank []string

	// Slots is the number of tokens the answer needs.
	Slots int

	// Template is the fill-blanks sentence. Empty for arrange-words.
	Template string

	Cursor int

	picked []int
	used   []bool
	locked bool
	wrong  map[int]bool
}

// NewWordBank creates a word bank over bank needing slots picks.
func NewWordBank(bank []string, slots int, template string) WordBank {
	return WordBank{
		Bank:     bank,
		Slots:    slots,
		Template: template,
		used:     make([]bool, len(bank)),
	}
}

// Picked returns the chosen tokens in pick order.
func (w WordBank) Picked() []string {
	out := make([]string, len(w.picked))
	for i, idx := range w.picked {
		out[i] = w.Bank[idx]
	}
	return out
}

// Full reports whether every slot has a token.
func (w WordBank) Full() bool {
	return w.Slots > 0 && len(w.picked) >= w.Slots
}

// Locked reports whether the bank has been checked and no longer accepts
// input.
func (w WordBank) Locked() bool {
	return w.locked
}

// Lock freezes the bank and marks the answer positions that were wrong.
func (w *WordBank) Lock(differences []int) {
	w.locked = true
	w.wrong = make(map[int]bool, len(differences))
	for _, d := range differences {
		w.wrong[d] = true
	}
}

// Update handles ←/→ to move, Enter or Space to pick and Backspace to undo
// the last pick. When the last slot is filled it returns a command that
// emits WordBankFullMsg.
func (w WordBank) Update(msg tea.Msg) (WordBank, tea.Cmd) {
	if w.locked {
		return w, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	switch kmsg.String() {
	case "left", "h":
		w.move(-1)
	case "right", "l":
		w.move(1)
	case "enter", "space", " ":
		return w.pick()
	case "backspace":
		w.undo()
	}
	return w, nil
}

// move steps the cursor to the next unused chip in dir, wrapping around.
func (w *WordBank) move(dir int) {
	n := len(w.Bank)
	if n == 0 {
		return
	}
	for step := 1; step <= n; step++ {
		i := ((w.Cursor+dir*step)%n + n) % n
		if !w.used[i] {
			w.Cursor = i
			return
		}
	}
}

func (w WordBank) pick() (WordBank, tea.Cmd) {
	if w.Full() || w.Cursor < 0 || w.Cursor >= len(w.Bank) || w.used[w.Cursor] {
		return w, nil
	}
	w.used = append([]bool(nil), w.used...)
	w.used[w.Cursor] = true
	w.picked = append(append([]int(nil), w.picked...), w.Cursor)
	if w.Full() {
		tokens := w.Picked()
		return w, func() tea.Msg { return WordBankFullMsg{Tokens: tokens} }
	}
	w.move(1)
	return w, nil
}

func (w *WordBank) undo() {
	if len(w.picked) == 0 {
		return
	}
	last := w.picked[len(w.picked)-1]
	w.picked = append([]int(nil), w.picked[:len(w.picked)-1]...)
	w.used = append([]bool(nil), w.used...)
	w.used[last] = false
	w.Cursor = last
}

// AnswerView renders the answer line: the template or a row of slots with
// the picked tokens filled in.
func (w WordBank) AnswerView() string {
	slots := make([]string, len(w.picked))
	for i, tok := range w.Picked() {
		style := theme.Slot
		if w.wrong[i] {
			style = theme.SlotWrong
		}
		slots[i] = style.Render(tok)
	}

	if w.Template != "" {
		return theme.Body.Render(exercise.Fill(w.Template, slots))
	}
	for len(slots) < w.Slots {
		slots = append(slots, lipgloss.NewStyle().Foreground(theme.TextDim).Render(exercise.Blank))
	}
	return strings.Join(slots, " ")
}

// BankView renders the chips, wrapping to width.
func (w WordBank) BankView(width int) string {
	var rows []string
	var row []string
	rowWidth := 0
	for i, tok := range w.Bank {
		style := theme.Chip
		switch {
		case w.used[i]:
			style = theme.ChipUsed
		case i == w.Cursor && !w.locked:
			style = theme.ChipFocused
		}
		chip := style.Render(tok)
		cw := lipgloss.Width(chip) + 1
		if rowWidth+cw > width && len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, chip, " ")
		rowWidth += cw
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

// View renders the answer line above the bank.
func (w WordBank) View(width int) string {
	return w.AnswerView() + "\n\n" + w.BankView(width)
}
