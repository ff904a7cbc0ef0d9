// File path: internal/sqlite/history.go
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ToolRun is one recorded dispatch of a tool through the API.
type ToolRun struct {
	ID         int64     `db:"id" json:"id"`
	Tool       string    `db:"tool" json:"tool"`
	Status     string    `db:"status" json:"status"`
	Message    string    `db:"message" json:"message,omitempty"`
	DurationMS int64     `db:"duration_ms" json:"duration_ms"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RecordRun persists one tool invocation outcome.
func (s *Store) RecordRun(ctx context.Context, tool, status, message string, elapsed time.Duration) error {
	if s == nil || s.db == nil {
		return errors.New("run history store not initialised")
	}
	const insert = `INSERT INTO tool_runs (tool, status, message, duration_ms) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, insert, tool, status, message, elapsed.Milliseconds()); err != nil {
		return fmt.Errorf("record tool run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent invocations, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]ToolRun, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("run history store not initialised")
	}
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, tool, status, message, duration_ms, created_at
FROM tool_runs ORDER BY created_at DESC, id DESC LIMIT ?`
	runs := make([]ToolRun, 0, limit)
	if err := s.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("load tool runs: %w", err)
	}
	return runs, nil
}
