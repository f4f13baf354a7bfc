package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/countdown/internal/db"
	"github.com/andy/countdown/internal/domain"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "history.db"), "test-key")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func TestHistoryRepo_AppendListClear(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepo(openTestDB(t))

	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)
	older := &domain.HistoryEntry{
		ID:        "a",
		Mode:      domain.ModeDuration,
		Duration:  90 * time.Second,
		StartedAt: base,
		EndedAt:   base.Add(90 * time.Second),
		Outcome:   domain.OutcomeCompleted,
	}
	newer := &domain.HistoryEntry{
		ID:        "b",
		Mode:      domain.ModeTarget,
		Duration:  time.Hour,
		StartedAt: base.Add(time.Hour),
		EndedAt:   base.Add(time.Hour + 10*time.Minute),
		Outcome:   domain.OutcomeStopped,
	}

	for _, e := range []*domain.HistoryEntry{older, newer} {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("append %s: %v", e.ID, err)
		}
	}

	entries, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "b" || entries[1].ID != "a" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
	if entries[1].Duration != 90*time.Second || entries[1].Outcome != domain.OutcomeCompleted {
		t.Fatalf("round trip lost fields: %+v", entries[1])
	}
	if !entries[1].EndedAt.Equal(older.EndedAt) {
		t.Fatalf("expected ended_at %v, got %v", older.EndedAt, entries[1].EndedAt)
	}

	limited, err := repo.List(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected one entry with limit, got %d (%v)", len(limited), err)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err = repo.List(ctx, 0)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty history after clear, got %d (%v)", len(entries), err)
	}
}
