package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/countdown/internal/db"
	"github.com/andy/countdown/internal/domain"
)

// HistoryRepo is a SQLite implementation of HistoryRepository
type HistoryRepo struct {
	db *db.DB
}

// NewHistoryRepo creates a new HistoryRepo
func NewHistoryRepo(database *db.DB) *HistoryRepo {
	return &HistoryRepo{db: database}
}

// Append records a finished countdown. Appending the same id twice replaces
// the earlier row.
func (r *HistoryRepo) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	query := `
		INSERT OR REPLACE INTO countdown_history (id, mode, duration_ms, started_at, ended_at, outcome)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Mode),
		entry.Duration.Milliseconds(),
		formatTime(entry.StartedAt),
		formatTime(entry.EndedAt),
		string(entry.Outcome),
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	return nil
}

// List returns finished countdowns, newest first
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	query := `
		SELECT id, mode, duration_ms, started_at, ended_at, outcome
		FROM countdown_history
		ORDER BY ended_at DESC, started_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		entry := &domain.HistoryEntry{}
		var mode, outcome, startedAt, endedAt string
		var durationMS int64

		if err := rows.Scan(&entry.ID, &mode, &durationMS, &startedAt, &endedAt, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.Mode = domain.Mode(mode)
		entry.Outcome = domain.Outcome(outcome)
		entry.Duration = time.Duration(durationMS) * time.Millisecond

		if entry.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		if entry.EndedAt, err = parseTime(endedAt); err != nil {
			return nil, fmt.Errorf("failed to parse ended_at: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}

// Clear deletes every history row
func (r *HistoryRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM countdown_history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
