// Package summary is the end-of-session screen: score, stars, the
// questions that went wrong, and a certificate on request.
package summary

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/certificate"
	"github.com/abhisek/wordiz/internal/exercise"
	prac "github.com/abhisek/wordiz/internal/practice"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Mistake is a question answered wrong on the first try.
type Mistake struct {
	Kind     exercise.Kind
	Expected string
	Given    string
}

// Result is what the practice screen hands over when a session ends.
type Result struct {
	SessionID string
	Learner   string
	Source    string
	Score     prac.Score
	Elapsed   time.Duration
	Mistakes  []Mistake
}

// Deps configure certificate output. A nil renderer disables certificates.
type Deps struct {
	Certificates *certificate.Renderer
	Dir          string
	Now          func() time.Time
}

// certSavedMsg reports the outcome of writing a certificate.
type certSavedMsg struct {
	Path string
	Err  error
}

// maxMistakesShown caps the mistake list so the screen fits.
const maxMistakesShown = 5

// SummaryScreen displays the result of a session.
type SummaryScreen struct {
	result Result
	deps   Deps

	askingName bool
	nameInput  components.TextInput
	saving     bool
	savedPath  string
	errMsg     string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen.
func New(result Result, deps Deps) *SummaryScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &SummaryScreen{result: result, deps: deps}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Well Done"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.askingName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.deps.Certificates != nil {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Certificate"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case certSavedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.savedPath = msg.Path
			s.errMsg = ""
		}
		return s, nil

	case tea.KeyMsg:
		if s.askingName {
			return s.handleNameKey(msg)
		}
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "c", "C":
			return s.requestCertificate()
		}
	}
	return s, nil
}

func (s *SummaryScreen) requestCertificate() (screen.Screen, tea.Cmd) {
	if s.deps.Certificates == nil || s.saving {
		return s, nil
	}
	if strings.TrimSpace(s.result.Learner) == "" {
		s.askingName = true
		s.nameInput = components.NewTextInput("Your name", 40)
		return s, nil
	}
	return s, s.saveCertificate(s.result.Learner)
}

func (s *SummaryScreen) handleNameKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.askingName = false
		return s, nil
	case "enter":
		name := s.nameInput.Value()
		if name == "" {
			return s, nil
		}
		s.askingName = false
		s.result.Learner = name
		return s, s.saveCertificate(name)
	}
	var cmd tea.Cmd
	s.nameInput, cmd = s.nameInput.Update(msg)
	return s, cmd
}

// saveCertificate renders and writes the certificate in the background.
func (s *SummaryScreen) saveCertificate(learner string) tea.Cmd {
	s.saving = true
	r := s.deps.Certificates
	at := s.deps.Now()
	path := filepath.Join(s.deps.Dir, certificate.FileName(learner, at))
	data := certificate.Data{
		Learner: learner,
		Title:   certificateTitle(s.result.Source),
		Correct: s.result.Score.Correct,
		Total:   s.result.Score.Total,
		Stars:   s.result.Score.Stars(),
		Date:    at,
	}
	return func() tea.Msg {
		return certSavedMsg{Path: path, Err: r.Save(path, data)}
	}
}

func certificateTitle(source string) string {
	if source == "" {
		return "English Practice"
	}
	return "English Practice: " + source
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(headline(r.Score.Stars())), width))
	b.WriteString("\n\n")
	b.WriteString(layout.CenterLine(components.Stars(r.Score.Stars()), width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%d of %d correct  (%d%%)\nTime: %s",
		r.Score.Correct, r.Score.Total, r.Score.Percent(), formatDuration(r.Elapsed))
	if unanswered := r.Score.Total - r.Score.Answered; unanswered > 0 {
		stats += fmt.Sprintf("\nNot answered: %d", unanswered)
	}
	b.WriteString(layout.CenterLine(components.Card(stats, cw), width))
	b.WriteString("\n")

	if len(r.Mistakes) > 0 {
		b.WriteString("\n")
		b.WriteString(layout.CenterLine(theme.Hint.Render("Let's look at these again:"), width))
		b.WriteString("\n")
		for i, m := range r.Mistakes {
			if i == maxMistakesShown {
				b.WriteString(layout.CenterLine(theme.Hint.Render(
					fmt.Sprintf("...and %d more", len(r.Mistakes)-maxMistakesShown)), width))
				b.WriteString("\n")
				break
			}
			line := theme.Correct.Render(m.Expected)
			if m.Given != "" {
				line += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  (you: " + m.Given + ")")
			}
			b.WriteString(layout.CenterLine(line, width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case s.askingName:
		b.WriteString(layout.CenterLine("Name for the certificate: "+s.nameInput.View(), width))
	case s.saving:
		b.WriteString(layout.CenterLine(theme.Hint.Render("Making your certificate..."), width))
	case s.savedPath != "":
		b.WriteString(layout.CenterLine(theme.Correct.Render("Certificate saved to "+s.savedPath), width))
	case s.errMsg != "":
		b.WriteString(layout.CenterLine(theme.Incorrect.Render("Could not save certificate: "+s.errMsg), width))
	}
	return b.String()
}

func headline(stars int) string {
	switch stars {
	case 3:
		return "Amazing!"
	case 2:
		return "Great work!"
	case 1:
		return "Good try!"
	}
	return "Keep practicing!"
}

func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
