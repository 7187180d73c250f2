package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// instructions returns the line shown above a question.
func instructions(q exercise.Question) string {
	switch q.(type) {
	case *exercise.ArrangeWords:
		return "Put the words in the right order."
	case *exercise.FillBlanks:
		return "Fill in the blanks."
	case *exercise.MultipleChoice:
		return "Choose the right answer."
	case *exercise.TrueFalse:
		return "True or false?"
	}
	return ""
}

func (s *PracticeScreen) renderQuestion(width, height int) string {
	q := s.current()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(components.NewStepBar(s.index, s.session.Len(), cw).View(), width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(instructions(q)))
	b.WriteString("\n")

	if tr := translationOf(q); tr != "" {
		b.WriteString(layout.CenterLine(theme.Hint.Render(tr), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if exercise.UsesWordBank(q) {
		b.WriteString(layout.CenterLine(s.bank.AnswerView(), width))
		b.WriteString("\n\n")
		b.WriteString(layout.CenterLine(s.bank.BankView(cw), width))
	} else {
		b.WriteString(layout.CenterLine(s.choice.View(), width))
	}

	if s.notice != "" && s.index == 0 {
		b.WriteString("\n\n")
		b.WriteString(layout.CenterLine(theme.Hint.Render(s.notice), width))
	}
	return b.String()
}

func translationOf(q exercise.Question) string {
	switch q := q.(type) {
	case *exercise.ArrangeWords:
		return q.Translation
	case *exercise.FillBlanks:
		return q.Translation
	}
	return ""
}

func (s *PracticeScreen) renderFeedback(width int) string {
	q := s.current()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n\n")

	if s.result.Correct {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Great job!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
	}
	b.WriteString("\n\n")

	if exercise.UsesWordBank(q) {
		b.WriteString(layout.CenterLine(s.bank.AnswerView(), width))
	} else {
		b.WriteString(layout.CenterLine(s.choice.View(), width))
	}
	b.WriteString("\n\n")

	if !s.result.Correct {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("Correct answer: %s", s.result.Canonical)))
		b.WriteString("\n\n")
	}

	if exp := exercise.ExplanationOf(q); exp != "" {
		box := lipgloss.NewStyle().
			Width(cw).
			Foreground(theme.TextDim).
			Render(exp)
		b.WriteString(layout.CenterLine(box, width))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Stop practicing now?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Questions you skipped count as not answered."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, show my score"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Getting your words ready...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
