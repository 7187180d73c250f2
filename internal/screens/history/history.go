// Package history lists past practice sessions.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// sessionLimit is how many sessions the screen loads.
const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

type attemptsLoadedMsg struct {
	SessionID string
	Attempts  []store.AttemptRecord
	Err       error
}

// HistoryScreen displays past sessions; Enter expands one to show its
// attempts.
type HistoryScreen struct {
	repo     store.HistoryRepo
	sessions []store.SessionRecord
	attempts map[string][]store.AttemptRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen.
func New(repo store.HistoryRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		attempts: make(map[string][]store.AttemptRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		sessions, err := repo.RecentSessions(context.Background(), sessionLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.attempts[msg.SessionID] = msg.Attempts
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands or collapses the selected session, loading its attempts
// the first time.
func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]
	id := s.sessions[s.selected].ID
	if !s.expanded[s.selected] {
		return nil
	}
	if _, ok := s.attempts[id]; ok {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		attempts, err := repo.SessionAttempts(context.Background(), id)
		return attemptsLoadedMsg{SessionID: id, Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		source := sess.Source
		if source == "" {
			source = "practice"
		}
		line := fmt.Sprintf("%s%s  %-30s %d/%d  ",
			prefix, sess.StartedAt.Format("Jan 02, 2006"), truncate(source, 30), sess.Correct, sess.Total)
		if sess.FinishedAt == nil {
			line += "unfinished"
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		row := style.Render(line)
		if sess.FinishedAt != nil {
			row += components.Stars(sess.Stars)
		}
		b.WriteString(layout.CenterLine(row, width))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAttempts(sess.ID, width))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderAttempts(sessionID string, width int) string {
	attempts, ok := s.attempts[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !ok {
		return layout.CenterLine(dim.Render("    Loading..."), width) + "\n"
	}
	if len(attempts) == 0 {
		return layout.CenterLine(dim.Render("    No answers in this session"), width) + "\n"
	}

	var b strings.Builder
	for _, a := range attempts {
		if !a.FirstTry {
			continue
		}
		mark := theme.Correct.Render("✓")
		text := a.Expected
		if !a.Correct {
			mark = theme.Incorrect.Render("✗")
			text = fmt.Sprintf("%s  (you: %s)", a.Expected, a.Answer)
		}
		b.WriteString(layout.CenterLine("    "+mark+" "+theme.Body.Render(text), width))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
