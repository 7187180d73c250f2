// Package practice is the TUI screen that runs a practice session: one
// question at a time, a word bank or choice widget per question, and
// feedback after every answer.
package practice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wordiz/internal/certificate"
	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/metrics"
	prac "github.com/abhisek/wordiz/internal/practice"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/summary"
	"github.com/abhisek/wordiz/internal/speech"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
)

// Deps carries everything a practice run needs besides its questions.
// Every field is optional.
type Deps struct {
	Learner  string
	Source   string
	Recorder prac.Recorder
	Metrics  *metrics.Metrics
	Log      *zap.Logger
	Speaker  *speech.Speaker

	Certificates *certificate.Renderer
	CertDir      string

	// SessionID fixes the session id, which also fixes the shuffles.
	SessionID string
}

// PracticeScreen runs one session over a fixed list of questions.
type PracticeScreen struct {
	questions []exercise.Question
	deps      Deps

	session *prac.Session
	skipped int
	index   int

	bank   components.WordBank
	choice components.MultiChoice

	showingFeedback    bool
	showingQuitConfirm bool
	result             prac.Result
	mistakes           []summary.Mistake
	notice             string
	errMsg             string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)

// New creates a practice screen. The session starts in Init.
func New(questions []exercise.Question, deps Deps) *PracticeScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &PracticeScreen{questions: questions, deps: deps}
}

func (s *PracticeScreen) Init() tea.Cmd {
	questions := s.questions
	deps := s.deps
	return func() tea.Msg {
		sess, skipped, err := prac.New(context.Background(), questions, prac.Options{
			ID:       deps.SessionID,
			Learner:  deps.Learner,
			Source:   deps.Source,
			Recorder: deps.Recorder,
			Metrics:  deps.Metrics,
			Log:      deps.Log,
		})
		return sessionReadyMsg{Session: sess, Skipped: skipped, Err: err}
	}
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

// Status shows the running score in the header.
func (s *PracticeScreen) Status() string {
	if s.session == nil {
		return ""
	}
	sc := s.session.Score()
	return fmt.Sprintf("★ %d/%d", sc.Correct, sc.Total)
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.showingQuitConfirm:
		return []layout.KeyHint{{Key: "Y", Description: "End"}, {Key: "N", Description: "Keep going"}}
	case s.showingFeedback:
		hints := []layout.KeyHint{{Key: "Any key", Description: "Next"}}
		if s.deps.Speaker != nil {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Listen"})
		}
		return hints
	}

	var hints []layout.KeyHint
	if s.usesBank() {
		hints = []layout.KeyHint{
			{Key: "←→", Description: "Move"},
			{Key: "Enter", Description: "Pick"},
			{Key: "Bksp", Description: "Undo"},
		}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "1-" + strconv.Itoa(len(s.choice.Options)), Description: "Answer"},
			{Key: "Enter", Description: "Pick"},
		}
	}
	if s.deps.Speaker != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Listen"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "End"})
}

func (s *PracticeScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.session == nil:
		return renderLoading(width)
	case s.showingQuitConfirm:
		return renderQuitConfirm(width)
	case s.showingFeedback:
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width, height)
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return s.handleReady(msg)
	case components.WordBankFullMsg:
		// A second full message can arrive after the first was graded.
		if s.showingFeedback || s.bank.Locked() {
			return s, nil
		}
		return s.submit(prac.Tokens(msg.Tokens...))
	case spokeMsg:
		if msg.Err != nil && !errors.Is(msg.Err, speech.ErrUnavailable) {
			s.deps.Log.Debug("speech failed", zap.Error(msg.Err))
		}
		return s, nil
	case finishMsg:
		return s.finish()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, prac.ErrNoQuestions) {
			s.errMsg = "None of these questions can be played."
		} else {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}
	s.session = msg.Session
	s.skipped = len(msg.Skipped)
	if s.skipped > 0 {
		s.notice = fmt.Sprintf("%d question(s) skipped because they had problems.", s.skipped)
	}
	return s, s.showQuestion()
}

// showQuestion builds the widget for the current question.
func (s *PracticeScreen) showQuestion() tea.Cmd {
	q := s.current()
	switch q := q.(type) {
	case *exercise.ArrangeWords:
		bank, err := s.session.WordBank(q.ID)
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.bank = components.NewWordBank(bank, len(q.Tokens), "")
	case *exercise.FillBlanks:
		bank, err := s.session.WordBank(q.ID)
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.bank = components.NewWordBank(bank, len(q.Tokens), q.Template)
	case *exercise.MultipleChoice:
		s.choice = components.NewMultiChoice(q.Prompt, q.Choices)
	case *exercise.TrueFalse:
		s.choice = components.NewMultiChoice(q.Statement, []string{"True", "False"})
	}
	s.session.Mark()
	return nil
}

func (s *PracticeScreen) current() exercise.Question {
	return s.session.Question(s.index)
}

func (s *PracticeScreen) usesBank() bool {
	return s.session != nil && exercise.UsesWordBank(s.current())
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.session == nil {
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return finishMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		if key == "s" || key == "tab" {
			return s, s.say(s.result.Canonical)
		}
		return s.next()
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "tab":
		return s, s.say(s.spokenPrompt())
	}

	if s.usesBank() {
		var cmd tea.Cmd
		s.bank, cmd = s.bank.Update(msg)
		return s, cmd
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted() {
		return s.submit(prac.Text(s.choice.Value()))
	}
	return s, nil
}

// submit grades ans for the current question and shows feedback.
func (s *PracticeScreen) submit(ans prac.Answer) (screen.Screen, tea.Cmd) {
	q := s.current()
	res, err := s.session.Submit(context.Background(), q.QuestionID(), ans)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.result = res

	if s.usesBank() {
		s.bank.Lock(res.Comparison.Differences)
	} else {
		s.choice.Reveal(correctChoice(q, s.choice.Options))
	}

	if res.FirstTry && !res.Correct {
		s.mistakes = append(s.mistakes, summary.Mistake{
			Kind:     res.Kind,
			Expected: res.Canonical,
			Given:    ans.String(),
		})
	}
	s.showingFeedback = true
	return s, nil
}

func (s *PracticeScreen) next() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.index++
	if s.index >= s.session.Len() {
		return s, func() tea.Msg { return finishMsg{} }
	}
	return s, s.showQuestion()
}

// finish closes the session and replaces this screen with the summary.
func (s *PracticeScreen) finish() (screen.Screen, tea.Cmd) {
	score := s.session.Finish(context.Background())
	res := summary.Result{
		SessionID: s.session.ID(),
		Learner:   s.session.Learner(),
		Source:    s.session.Source(),
		Score:     score,
		Elapsed:   s.session.Elapsed(),
		Mistakes:  s.mistakes,
	}
	next := summary.New(res, summary.Deps{
		Certificates: s.deps.Certificates,
		Dir:          s.deps.CertDir,
	})
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// say speaks text in the background. It is a no-op without a speaker.
func (s *PracticeScreen) say(text string) tea.Cmd {
	sp := s.deps.Speaker
	if sp == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return spokeMsg{Err: sp.Say(ctx, text)}
	}
}

// spokenPrompt is read aloud on request. Word-bank questions read the
// bank so the answer is not given away.
func (s *PracticeScreen) spokenPrompt() string {
	switch q := s.current().(type) {
	case *exercise.ArrangeWords:
		return strings.Join(s.bank.Bank, ", ")
	case *exercise.FillBlanks:
		return exercise.ReplaceBlanks(q.Template, "blank")
	case *exercise.MultipleChoice:
		return q.Prompt + " " + strings.Join(q.Choices, ", ")
	case *exercise.TrueFalse:
		return q.Statement
	}
	return ""
}

// correctChoice returns the index of the correct option, or -1.
func correctChoice(q exercise.Question, options []string) int {
	switch q := q.(type) {
	case *exercise.MultipleChoice:
		for i, opt := range options {
			if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(q.Answer)) {
				return i
			}
		}
	case *exercise.TrueFalse:
		if q.Answer {
			return 0
		}
		return 1
	}
	return -1
}
