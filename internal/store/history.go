package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var (
	sessionColumns = []string{
		"id", "learner", "source", "started_at", "finished_at",
		"total", "answered", "correct", "stars",
	}
	attemptColumns = []string{
		"id", "sequence", "created_at", "session_id", "question_id", "kind",
		"prompt", "expected", "answer", "correct", "first_try", "time_ms",
	}
)

// ErrAmbiguousSession is returned when a session id prefix matches more than
// one session.
var ErrAmbiguousSession = errors.New("session id prefix is ambiguous")

type historyRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *historyRepo) StartSession(ctx context.Context, rec SessionRecord) error {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(PracticeSessionsTable.Name).
		Columns("id", "learner", "source", "started_at", "total").
		Values(rec.ID, rec.Learner, rec.Source, rec.StartedAt.UTC(), rec.Total).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save practice session: %w", err)
	}
	return nil
}

func (r *historyRepo) FinishSession(ctx context.Context, id string, score SessionScore, at time.Time) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Update(PracticeSessionsTable.Name).
		Set("finished_at", at.UTC()).
		Set("total", score.Total).
		Set("answered", score.Answered).
		Set("correct", score.Correct).
		Set("stars", score.Stars).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("finish practice session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish practice session: %q not found", id)
	}
	return nil
}

func (r *historyRepo) AppendAttempt(ctx context.Context, rec AttemptRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(AttemptsTable.Name).
		Columns(attemptColumns[1:]...).
		Values(
			seqNum, rec.CreatedAt.UTC(), rec.SessionID, rec.QuestionID, rec.Kind,
			rec.Prompt, rec.Expected, rec.Answer, rec.Correct, rec.FirstTry, rec.TimeMs,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *historyRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(sessionColumns...).
		From(entsql.Table(PracticeSessionsTable.Name)).
		OrderBy(entsql.Desc("started_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.querySessions(ctx, sel)
}

func (r *historyRepo) GetSession(ctx context.Context, idOrPrefix string) (*SessionRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(sessionColumns...).
		From(entsql.Table(PracticeSessionsTable.Name)).
		Where(entsql.HasPrefix("id", idOrPrefix)).
		Limit(2)

	recs, err := r.querySessions(ctx, sel)
	if err != nil {
		return nil, err
	}
	switch {
	case len(recs) == 0:
		return nil, nil
	case len(recs) > 1:
		for _, rec := range recs {
			if rec.ID == idOrPrefix {
				return &rec, nil
			}
		}
		return nil, fmt.Errorf("%q: %w", idOrPrefix, ErrAmbiguousSession)
	}
	return &recs[0], nil
}

func (r *historyRepo) querySessions(ctx context.Context, sel *entsql.Selector) ([]SessionRecord, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query practice sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec      SessionRecord
			finished sql.NullTime
		)
		err := rows.Scan(&rec.ID, &rec.Learner, &rec.Source, &rec.StartedAt, &finished,
			&rec.Total, &rec.Answered, &rec.Correct, &rec.Stars)
		if err != nil {
			return nil, fmt.Errorf("scan practice session: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			rec.FinishedAt = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *historyRepo) SessionAttempts(ctx context.Context, sessionID string) ([]AttemptRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(AttemptsTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		err := rows.Scan(&a.ID, &a.Sequence, &a.CreatedAt, &a.SessionID, &a.QuestionID, &a.Kind,
			&a.Prompt, &a.Expected, &a.Answer, &a.Correct, &a.FirstTry, &a.TimeMs)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *historyRepo) AccuracyByKind(ctx context.Context) ([]KindAccuracy, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"kind",
			entsql.As(entsql.Count("*"), "attempts"),
			entsql.As(entsql.Sum("correct"), "correct"),
		).
		From(entsql.Table(AttemptsTable.Name)).
		Where(entsql.EQ("first_try", true)).
		GroupBy("kind").
		OrderBy("kind").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accuracy by kind: %w", err)
	}
	defer rows.Close()

	var out []KindAccuracy
	for rows.Next() {
		var k KindAccuracy
		if err := rows.Scan(&k.Kind, &k.Attempts, &k.Correct); err != nil {
			return nil, fmt.Errorf("scan accuracy by kind: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
