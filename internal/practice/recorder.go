package practice

import (
	"context"
	"time"

	"github.com/abhisek/wordiz/internal/store"
)

// Recorder persists session progress. Implementations must be safe for use
// from the goroutine that drives the session.
type Recorder interface {
	SessionStarted(ctx context.Context, info Info) error
	AttemptRecorded(ctx context.Context, a Attempt) error
	SessionFinished(ctx context.Context, id string, score Score, at time.Time) error
}

// Info describes a session when it starts.
type Info struct {
	ID        string
	Learner   string
	Source    string
	Total     int
	StartedAt time.Time
}

// Attempt is one learner submission.
type Attempt struct {
	SessionID  string
	QuestionID string
	Kind       string
	Prompt     string
	Expected   string
	Answer     string
	Correct    bool
	FirstTry   bool
	Elapsed    time.Duration
	At         time.Time
}

// StoreRecorder writes sessions through a store.HistoryRepo.
type StoreRecorder struct {
	repo store.HistoryRepo
}

// NewStoreRecorder returns a Recorder backed by repo.
func NewStoreRecorder(repo store.HistoryRepo) *StoreRecorder {
	return &StoreRecorder{repo: repo}
}

func (r *StoreRecorder) SessionStarted(ctx context.Context, info Info) error {
	return r.repo.StartSession(ctx, store.SessionRecord{
		ID:        info.ID,
		Learner:   info.Learner,
		Source:    info.Source,
		StartedAt: info.StartedAt,
		Total:     info.Total,
	})
}

func (r *StoreRecorder) AttemptRecorded(ctx context.Context, a Attempt) error {
	return r.repo.AppendAttempt(ctx, store.AttemptRecord{
		CreatedAt:  a.At,
		SessionID:  a.SessionID,
		QuestionID: a.QuestionID,
		Kind:       a.Kind,
		Prompt:     a.Prompt,
		Expected:   a.Expected,
		Answer:     a.Answer,
		Correct:    a.Correct,
		FirstTry:   a.FirstTry,
		TimeMs:     a.Elapsed.Milliseconds(),
	})
}

func (r *StoreRecorder) SessionFinished(ctx context.Context, id string, score Score, at time.Time) error {
	return r.repo.FinishSession(ctx, id, store.SessionScore{
		Total:    score.Total,
		Answered: score.Answered,
		Correct:  score.Correct,
		Stars:    score.Stars(),
	}, at)
}
