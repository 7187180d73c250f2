package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates token usage for one purpose label.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// SessionRecord is a stored practice session.
type SessionRecord struct {
	ID         string
	Learner    string
	Source     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Total      int
	Answered   int
	Correct    int
	Stars      int
}

// Percent returns the share of correct answers out of the total, 0-100.
func (r SessionRecord) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return r.Correct * 100 / r.Total
}

// SessionScore is written when a session finishes.
type SessionScore struct {
	Total    int
	Answered int
	Correct  int
	Stars    int
}

// AttemptRecord is a single learner submission.
type AttemptRecord struct {
	ID         int
	Sequence   int64
	CreatedAt  time.Time
	SessionID  string
	QuestionID string
	Kind       string
	Prompt     string
	Expected   string
	Answer     string
	Correct    bool
	FirstTry   bool
	TimeMs     int64
}

// KindAccuracy aggregates first-try accuracy per question kind.
type KindAccuracy struct {
	Kind     string
	Attempts int
	Correct  int
}

// Accuracy returns Correct/Attempts, or 0 when there are no attempts.
func (k KindAccuracy) Accuracy() float64 {
	if k.Attempts == 0 {
		return 0
	}
	return float64(k.Correct) / float64(k.Attempts)
}

// HistoryRepo persists practice sessions and their attempts.
type HistoryRepo interface {
	StartSession(ctx context.Context, rec SessionRecord) error
	FinishSession(ctx context.Context, id string, score SessionScore, at time.Time) error
	AppendAttempt(ctx context.Context, rec AttemptRecord) error

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// GetSession looks a session up by id or unique id prefix. It returns
	// nil when nothing matches.
	GetSession(ctx context.Context, idOrPrefix string) (*SessionRecord, error)

	// SessionAttempts returns the attempts of a session in submission order.
	SessionAttempts(ctx context.Context, sessionID string) ([]AttemptRecord, error)

	// AccuracyByKind aggregates first-try attempts across all sessions.
	AccuracyByKind(ctx context.Context) ([]KindAccuracy, error)
}
