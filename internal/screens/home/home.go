// Package home is the TUI start screen.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/history"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
)

// statsWindow is how many recent sessions feed the stats bar.
const statsWindow = 100

// Options configure the home screen.
type Options struct {
	// Questions are played by "Start practice". Each run gets a fresh
	// session, and so fresh shuffles.
	Questions []exercise.Question
	Source    string

	// History enables the history screen and the stats bar. May be nil.
	History store.HistoryRepo

	Practice practice.Deps
}

type stats struct {
	Sessions  int
	Stars     int
	Percent   int
	LastStars int
}

type statsLoadedMsg struct {
	Stats stats
	Err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts  Options
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(opts Options) *HomeScreen {
	if opts.Practice.Source == "" {
		opts.Practice.Source = opts.Source
	}
	h := &HomeScreen{opts: opts}

	items := []components.MenuItem{
		{Label: "START PRACTICE", Disabled: len(opts.Questions) == 0, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: practice.New(h.opts.Questions, h.opts.Practice)}
			}
		}},
		{Label: "HISTORY", Disabled: opts.History == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.opts.History)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Refresh reloads the stats when the screen is shown again.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.opts.History
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		sessions, err := repo.RecentSessions(context.Background(), statsWindow)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Stats: summarize(sessions)}
	}
}

// summarize aggregates finished sessions, newest first.
func summarize(sessions []store.SessionRecord) stats {
	var st stats
	var correct, total int
	for _, s := range sessions {
		if s.FinishedAt == nil {
			continue
		}
		if st.Sessions == 0 {
			st.LastStars = s.Stars
		}
		st.Sessions++
		st.Stars += s.Stars
		correct += s.Correct
		total += s.Total
	}
	if total > 0 {
		st.Percent = correct * 100 / total
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err == nil {
			h.stats = msg.Stats
		}
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactWidth(width) || layout.IsCompactHeight(height+6)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(RenderMascot(mascotFor(h.stats.LastStars, h.stats.Sessions > 0))))
	}
	if h.opts.History != nil {
		sections = append(sections, renderStatsBar(h.stats, cw, compact))
	}
	if h.opts.Source != "" {
		sections = append(sections, renderSourceLine(h.opts.Source, len(h.opts.Questions), cw))
	}
	sections = append(sections, renderMenu(h.menu.Items, h.menu.Selected, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
