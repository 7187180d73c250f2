package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// MultiChoice is a single-answer selector used for multiple-choice and
// true/false questions. The correct answer is unknown to the widget; the
// caller reveals it with Reveal after grading.
type MultiChoice struct {
	Prompt   string
	Options  []string
	Selected int

	// Chosen is the submitted option, or -1.
	Chosen int

	// Correct is the option revealed as correct, or -1.
	Correct int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(prompt string, options []string) MultiChoice {
	return MultiChoice{
		Prompt:  prompt,
		Options: options,
		Chosen:  -1,
		Correct: -1,
	}
}

// Submitted reports whether an option has been chosen.
func (m MultiChoice) Submitted() bool {
	return m.Chosen >= 0
}

// Value returns the chosen option text, or "" before submission.
func (m MultiChoice) Value() string {
	if !m.Submitted() {
		return ""
	}
	return m.Options[m.Chosen]
}

// Update moves the cursor with ↑/↓, picks with Enter, and picks directly
// with the number keys 1-9.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted() {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Chosen = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.Chosen = i
			}
		}
	}
	return m, nil
}

// Reveal marks the correct option for display.
func (m *MultiChoice) Reveal(correct int) {
	m.Correct = correct
}

// View renders the prompt and numbered options.
func (m MultiChoice) View() string {
	var b strings.Builder
	if m.Prompt != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt))
		b.WriteString("\n\n")
	}

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted() && i == m.Correct:
			style = theme.Correct
		case m.Submitted() && i == m.Chosen:
			style = theme.Incorrect
		case m.Submitted():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
