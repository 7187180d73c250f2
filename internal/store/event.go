package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// eventSequence is the counter shared by attempts and LLM events, so rows
// from both tables can be merged into one timeline.
const eventSequence = "event"

// sequenceCounter hands out monotonic numbers from one named row of the
// counters table. Each increment is a single atomic upsert, and the mutex
// serializes callers within the process.
type sequenceCounter struct {
	mu   sync.Mutex
	db   *sql.DB
	name string
}

func newSequenceCounter(db *sql.DB, name string) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS counters (
		name  TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create counters table: %w", err)
	}
	return &sequenceCounter{db: db, name: name}, nil
}

// Next returns the next number, starting at 1.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var v int64
	err := sc.db.QueryRowContext(ctx,
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = value + 1
		 RETURNING value`, sc.name,
	).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", sc.name, err)
	}
	return v, nil
}
