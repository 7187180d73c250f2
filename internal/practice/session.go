// Package practice runs a practice session over a list of exercise
// questions: it prepares word banks, checks answers and keeps the score.
package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/metrics"
)

var (
	// ErrNoQuestions is returned when no question survives validation.
	ErrNoQuestions = errors.New("no valid questions")

	// ErrUnknownQuestion is returned for ids not in the session.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrFinished is returned when submitting to a finished session.
	ErrFinished = errors.New("session finished")
)

// Options configure a new Session. Every field is optional.
type Options struct {
	// ID is the session id. Empty means a new UUID. Word banks are derived
	// from it, so reusing an id reproduces the same shuffles.
	ID string

	Learner string
	Source  string

	Recorder Recorder
	Metrics  *metrics.Metrics
	Log      *zap.Logger

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Skipped is a question left out of the session because it failed
// validation.
type Skipped struct {
	QuestionID string
	Findings   []exercise.ValidationError
}

// Answer is a learner submission. Token questions use Tokens; choice and
// true/false questions use Text.
type Answer struct {
	Tokens []string
	Text   string
}

// Tokens builds an Answer from picked word-bank tokens.
func Tokens(tokens ...string) Answer { return Answer{Tokens: tokens} }

// Text builds an Answer from typed or selected text.
func Text(s string) Answer { return Answer{Text: s} }

func (a Answer) String() string {
	if a.Tokens != nil {
		return exercise.Join(a.Tokens)
	}
	return a.Text
}

// Result is the verdict for one submission.
type Result struct {
	QuestionID string
	Kind       exercise.Kind
	Comparison exercise.Comparison

	// Canonical is the correct answer for display.
	Canonical string
	Correct   bool

	// FirstTry reports whether this was the scoring attempt.
	FirstTry bool
	Attempt  int
}

// Session is a single run through a list of questions. It is safe for
// concurrent use.
type Session struct {
	id      string
	learner string
	source  string

	questions []exercise.Question
	index     map[string]int

	recorder Recorder
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time

	mu        sync.Mutex
	banks     map[string][]string
	attempts  map[string]int
	firstTry  map[string]bool
	score     Score
	startedAt time.Time
	lastMark  time.Time
	finished  bool
}

// New validates questions, drops those with blocking findings and starts a
// session over the rest. It returns ErrNoQuestions when none are usable.
func New(ctx context.Context, questions []exercise.Question, opts Options) (*Session, []Skipped, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	s := &Session{
		id:       id,
		learner:  opts.Learner,
		source:   opts.Source,
		index:    make(map[string]int),
		recorder: opts.Recorder,
		metrics:  opts.Metrics,
		log:      log.With(zap.String("session", id)),
		now:      now,
		banks:    make(map[string][]string),
		attempts: make(map[string]int),
		firstTry: make(map[string]bool),
	}

	var skipped []Skipped
	for _, q := range questions {
		if q == nil {
			continue
		}
		findings := exercise.Validate(q)
		errs, warns := countFindings(findings)
		s.metrics.ObserveFindings(string(q.Kind()), errs, warns)

		if !exercise.IsQuestionValid(findings) {
			skipped = append(skipped, Skipped{QuestionID: q.QuestionID(), Findings: findings})
			s.log.Warn("skipping invalid question",
				zap.String("question", q.QuestionID()),
				zap.String("kind", string(q.Kind())),
				zap.Strings("errors", findingStrings(exercise.Errors(findings))))
			continue
		}
		if warns > 0 {
			s.log.Debug("question has warnings",
				zap.String("question", q.QuestionID()),
				zap.Strings("findings", findingStrings(findings)))
		}
		if _, dup := s.index[q.QuestionID()]; dup {
			skipped = append(skipped, Skipped{
				QuestionID: q.QuestionID(),
				Findings: []exercise.ValidationError{{
					Field: "id", Message: "duplicate question id", Severity: exercise.SeverityError,
				}},
			})
			s.log.Warn("skipping duplicate question id", zap.String("question", q.QuestionID()))
			continue
		}
		s.index[q.QuestionID()] = len(s.questions)
		s.questions = append(s.questions, q)
	}
	if len(s.questions) == 0 {
		return nil, skipped, ErrNoQuestions
	}

	s.score.Total = len(s.questions)
	s.startedAt = now()
	s.lastMark = s.startedAt

	if s.recorder != nil {
		err := s.recorder.SessionStarted(ctx, Info{
			ID:        s.id,
			Learner:   s.learner,
			Source:    s.source,
			Total:     s.score.Total,
			StartedAt: s.startedAt,
		})
		if err != nil {
			s.log.Warn("failed to record session start", zap.Error(err))
		}
	}
	return s, skipped, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Learner returns the learner name given at start.
func (s *Session) Learner() string { return s.learner }

// Source describes where the questions came from.
func (s *Session) Source() string { return s.source }

// Len returns the number of accepted questions.
func (s *Session) Len() int { return len(s.questions) }

// Question returns the i-th accepted question.
func (s *Session) Question(i int) exercise.Question { return s.questions[i] }

// Questions returns the accepted questions in order.
func (s *Session) Questions() []exercise.Question {
	return append([]exercise.Question(nil), s.questions...)
}

// WordBank returns the shuffled word bank for a question, derived once per
// session from the question and session ids. Questions without a word bank
// return nil.
func (s *Session) WordBank(questionID string) ([]string, error) {
	q, err := s.lookup(questionID)
	if err != nil {
		return nil, err
	}
	if !exercise.UsesWordBank(q) {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	bank, ok := s.banks[questionID]
	if !ok {
		bank = exercise.WordBankFor(q, s.id)
		s.banks[questionID] = bank
	}
	return append([]string(nil), bank...), nil
}

// Mark resets the answer timer, typically when a question is shown.
func (s *Session) Mark() {
	s.mu.Lock()
	s.lastMark = s.now()
	s.mu.Unlock()
}

// Submit checks an answer. The first submission for a question is the one
// that scores; later ones are still checked and recorded.
func (s *Session) Submit(ctx context.Context, questionID string, ans Answer) (Result, error) {
	q, err := s.lookup(questionID)
	if err != nil {
		return Result{}, err
	}

	res := Check(q, ans)

	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return Result{}, ErrFinished
	}
	s.attempts[questionID]++
	res.Attempt = s.attempts[questionID]
	res.FirstTry = res.Attempt == 1
	if res.FirstTry {
		s.firstTry[questionID] = res.Correct
		s.score.Answered++
		if res.Correct {
			s.score.Correct++
		}
	}
	at := s.now()
	elapsed := at.Sub(s.lastMark)
	s.lastMark = at
	s.mu.Unlock()

	if res.FirstTry {
		s.metrics.ObserveAnswer(string(res.Kind), res.Correct)
	}
	if s.recorder != nil {
		err := s.recorder.AttemptRecorded(ctx, Attempt{
			SessionID:  s.id,
			QuestionID: questionID,
			Kind:       string(res.Kind),
			Prompt:     promptOf(q),
			Expected:   res.Canonical,
			Answer:     ans.String(),
			Correct:    res.Correct,
			FirstTry:   res.FirstTry,
			Elapsed:    elapsed,
			At:         at,
		})
		if err != nil {
			s.log.Warn("failed to record attempt", zap.String("question", questionID), zap.Error(err))
		}
	}
	return res, nil
}

// Answered reports whether a question has a scoring attempt, and whether it
// was correct.
func (s *Session) Answered(questionID string) (answered, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	correct, answered = s.firstTry[questionID]
	return answered, correct
}

// Score returns the running score.
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Elapsed returns the time since the session started.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.startedAt)
}

// Finish closes the session and records the final score. Calling it again
// returns the same score without recording.
func (s *Session) Finish(ctx context.Context) Score {
	s.mu.Lock()
	already := s.finished
	s.finished = true
	score := s.score
	s.mu.Unlock()

	if already || s.recorder == nil {
		return score
	}
	if err := s.recorder.SessionFinished(ctx, s.id, score, s.now()); err != nil {
		s.log.Warn("failed to record session finish", zap.Error(err))
	}
	s.log.Info("session finished",
		zap.Int("correct", score.Correct),
		zap.Int("answered", score.Answered),
		zap.Int("total", score.Total),
		zap.Int("stars", score.Stars()))
	return score
}

func (s *Session) lookup(questionID string) (exercise.Question, error) {
	i, ok := s.index[questionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	return s.questions[i], nil
}

// Check grades an answer against a question without touching any session
// state. Token answers are compared ignoring case.
func Check(q exercise.Question, ans Answer) Result {
	res := Result{
		QuestionID: q.QuestionID(),
		Kind:       q.Kind(),
		Canonical:  exercise.Canonical(q),
	}
	switch q := q.(type) {
	case *exercise.ArrangeWords, *exercise.FillBlanks:
		res.Comparison = exercise.Compare(ans.Tokens, exercise.CorrectTokens(q), false)
	case *exercise.MultipleChoice:
		res.Comparison = verdict(exercise.CheckChoice(q, ans.Text))
	case *exercise.TrueFalse:
		res.Comparison = verdict(exercise.CheckTrueFalse(q, ans.Text))
	}
	res.Correct = res.Comparison.IsCorrect
	return res
}

func verdict(ok bool) exercise.Comparison {
	return exercise.Comparison{IsCorrect: ok, Differences: []int{}}
}

// promptOf returns the text shown to the learner for a question.
func promptOf(q exercise.Question) string {
	switch q := q.(type) {
	case *exercise.ArrangeWords:
		return strings.Join(q.WordBank, " ")
	case *exercise.FillBlanks:
		return q.Template
	case *exercise.MultipleChoice:
		return q.Prompt
	case *exercise.TrueFalse:
		return q.Statement
	}
	return ""
}

func countFindings(findings []exercise.ValidationError) (errs, warns int) {
	for _, f := range findings {
		if f.Severity == exercise.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	return errs, warns
}

func findingStrings(findings []exercise.ValidationError) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.String()
	}
	return out
}
