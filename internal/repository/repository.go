package repository

import (
	"context"

	"github.com/andy/countdown/internal/domain"
)

// HistoryRepository manages the log of finished countdowns
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.HistoryEntry) error
	List(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) // Newest first; limit <= 0 means all
	Clear(ctx context.Context) error
}
