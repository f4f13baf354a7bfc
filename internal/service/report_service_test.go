package service

import (
	"context"
	"testing"
	"time"

	"github.com/andy/countdown/internal/domain"
)

func historyAt(ended time.Time, outcome domain.Outcome, d time.Duration) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ID:        ended.String(),
		Mode:      domain.ModeDuration,
		Duration:  d,
		StartedAt: ended.Add(-d),
		EndedAt:   ended,
		Outcome:   outcome,
	}
}

func TestReportService_WeekSummary(t *testing.T) {
	// Wednesday
	wed := time.Date(2026, 10, 21, 15, 0, 0, 0, time.Local)
	repo := &mockHistoryRepo{entries: []*domain.HistoryEntry{
		historyAt(wed, domain.OutcomeCompleted, 25*time.Minute),
		historyAt(wed.Add(time.Hour), domain.OutcomeCompleted, 5*time.Minute),
		historyAt(wed.AddDate(0, 0, 1), domain.OutcomeStopped, time.Hour),
		historyAt(wed.AddDate(0, 0, -7), domain.OutcomeCompleted, time.Hour), // previous week
	}}

	svc := NewReportService(repo)
	summary, err := svc.GetWeekSummary(context.Background(), wed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Start.Weekday() != time.Monday || summary.Start.Day() != 19 {
		t.Fatalf("expected week to start Monday 19th, got %v", summary.Start)
	}
	if summary.Count != 3 {
		t.Fatalf("expected 3 countdowns, got %d", summary.Count)
	}
	if summary.ByOutcome[domain.OutcomeCompleted] != 2 || summary.ByOutcome[domain.OutcomeStopped] != 1 {
		t.Fatalf("unexpected outcomes %v", summary.ByOutcome)
	}
	if summary.CountedTime != 30*time.Minute {
		t.Fatalf("expected 30m counted, got %v", summary.CountedTime)
	}
	if summary.Longest != 25*time.Minute {
		t.Fatalf("expected longest 25m, got %v", summary.Longest)
	}
	if summary.ByDay[time.Wednesday] != 2 || summary.ByDay[time.Thursday] != 1 {
		t.Fatalf("unexpected by-day counts %v", summary.ByDay)
	}
}

func TestReportService_DailyAndOverall(t *testing.T) {
	day := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)
	repo := &mockHistoryRepo{entries: []*domain.HistoryEntry{
		historyAt(day, domain.OutcomeCompleted, time.Minute),
		historyAt(day.Add(14*time.Hour+59*time.Minute), domain.OutcomeReset, time.Minute),
		historyAt(day.AddDate(0, 0, 1).Add(-9*time.Hour), domain.OutcomeCompleted, time.Minute), // next midnight
	}}

	svc := NewReportService(repo)

	daily, err := svc.GetDailySummary(context.Background(), day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if daily.Count != 2 {
		t.Fatalf("expected 2 countdowns today, got %d", daily.Count)
	}
	if got := daily.CompletionRate(); got != 0.5 {
		t.Fatalf("expected 50%% completion, got %v", got)
	}

	overall, err := svc.GetOverallSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overall.Count != 3 || overall.ByMode[domain.ModeDuration] != 3 {
		t.Fatalf("unexpected overall summary %+v", overall)
	}
}

func TestReportService_Empty(t *testing.T) {
	summary, err := NewReportService(&mockHistoryRepo{}).GetOverallSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Count != 0 || summary.CompletionRate() != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}
