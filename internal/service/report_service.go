package service

import (
	"context"
	"time"

	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/repository"
)

// HistorySummary aggregates finished countdowns over a period
type HistorySummary struct {
	Start, End time.Time // zero for all time

	Count       int
	ByOutcome   map[domain.Outcome]int
	ByMode      map[domain.Mode]int
	ByDay       map[time.Weekday]int
	CountedTime time.Duration // total length of completed countdowns
	Longest     time.Duration // longest completed countdown
}

// CompletionRate returns the share of countdowns that reached zero
func (s *HistorySummary) CompletionRate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.ByOutcome[domain.OutcomeCompleted]) / float64(s.Count)
}

// ReportService provides aggregations over the history log
type ReportService interface {
	GetWeekSummary(ctx context.Context, weekStart time.Time) (*HistorySummary, error)
	GetDailySummary(ctx context.Context, date time.Time) (*HistorySummary, error)
	GetOverallSummary(ctx context.Context) (*HistorySummary, error)
}

type reportService struct {
	history repository.HistoryRepository
}

// NewReportService creates a new report service
func NewReportService(history repository.HistoryRepository) ReportService {
	return &reportService{history: history}
}

func (s *reportService) GetWeekSummary(ctx context.Context, weekStart time.Time) (*HistorySummary, error) {
	// Ensure weekStart is actually a Monday (start of week)
	for weekStart.Weekday() != time.Monday {
		weekStart = weekStart.AddDate(0, 0, -1)
	}
	weekStart = startOfDay(weekStart)

	return s.summarize(ctx, weekStart, weekStart.AddDate(0, 0, 7))
}

func (s *reportService) GetDailySummary(ctx context.Context, date time.Time) (*HistorySummary, error) {
	day := startOfDay(date)
	return s.summarize(ctx, day, day.AddDate(0, 0, 1))
}

func (s *reportService) GetOverallSummary(ctx context.Context) (*HistorySummary, error) {
	return s.summarize(ctx, time.Time{}, time.Time{})
}

// summarize counts entries that ended in [start, end). Zero bounds are open.
func (s *reportService) summarize(ctx context.Context, start, end time.Time) (*HistorySummary, error) {
	entries, err := s.history.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	summary := &HistorySummary{
		Start:     start,
		End:       end,
		ByOutcome: make(map[domain.Outcome]int),
		ByMode:    make(map[domain.Mode]int),
		ByDay:     make(map[time.Weekday]int),
	}

	for _, entry := range entries {
		if !start.IsZero() && entry.EndedAt.Before(start) {
			continue
		}
		if !end.IsZero() && !entry.EndedAt.Before(end) {
			continue
		}

		summary.Count++
		summary.ByOutcome[entry.Outcome]++
		summary.ByMode[entry.Mode]++
		summary.ByDay[entry.EndedAt.Weekday()]++

		if entry.Outcome == domain.OutcomeCompleted {
			summary.CountedTime += entry.Duration
			if entry.Duration > summary.Longest {
				summary.Longest = entry.Duration
			}
		}
	}

	return summary, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
