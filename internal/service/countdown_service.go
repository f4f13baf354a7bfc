package service

import (
	"context"
	"log/slog"

	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/metrics"
	"github.com/andy/countdown/internal/repository"
)

// Notifier is told when a countdown reaches zero
type Notifier interface {
	Notify()
}

// CountdownService drives one countdown engine and records what happens to it.
// All methods are safe to call in any phase; commands that do not apply
// return the unchanged snapshot.
type CountdownService interface {
	// Snapshot returns the current observable state
	Snapshot() domain.Snapshot

	// Mode returns the mode the next Start will use
	Mode() domain.Mode

	// SetMode switches mode. A running or paused countdown is stopped and
	// logged as stopped; the bool reports that this happened.
	SetMode(ctx context.Context, mode domain.Mode) bool

	// Start begins a countdown from raw fields (only from Idle)
	Start(ctx context.Context, fields domain.Fields) (domain.Snapshot, error)

	// Tick advances a running countdown; the bool is the completion signal
	Tick(ctx context.Context) (domain.Snapshot, bool)

	// Pause freezes a running countdown
	Pause(ctx context.Context) (domain.Snapshot, bool)

	// Resume continues a paused countdown
	Resume(ctx context.Context) (domain.Snapshot, bool)

	// Stop cancels the countdown ("Countdown stopped")
	Stop(ctx context.Context) domain.Snapshot

	// Reset clears the countdown ("Ready to start")
	Reset(ctx context.Context) domain.Snapshot

	// History lists finished countdowns, newest first
	History(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)

	// ClearHistory deletes the history log
	ClearHistory(ctx context.Context) error
}

type countdownService struct {
	countdown *domain.Countdown
	clock     domain.Clock
	history   repository.HistoryRepository
	metrics   *metrics.Metrics
	notifier  Notifier
	logger    *slog.Logger
}

// NewCountdownService creates a service around a fresh idle countdown
func NewCountdownService(
	clock domain.Clock,
	mode domain.Mode,
	history repository.HistoryRepository,
	m *metrics.Metrics,
	notifier Notifier,
	logger *slog.Logger,
) CountdownService {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &countdownService{
		countdown: domain.NewCountdown(clock, mode),
		clock:     clock,
		history:   history,
		metrics:   m,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *countdownService) Snapshot() domain.Snapshot {
	return s.countdown.Snapshot()
}

func (s *countdownService) Mode() domain.Mode {
	return s.countdown.Mode()
}

func (s *countdownService) SetMode(ctx context.Context, mode domain.Mode) bool {
	if mode != domain.ModeTarget && mode != domain.ModeDuration {
		return false
	}

	if s.countdown.Active() {
		s.record(ctx, domain.OutcomeStopped)
		s.metrics.Cancelled.WithLabelValues(string(domain.OutcomeStopped)).Inc()
	}

	previous := s.countdown.Mode()
	cancelled := s.countdown.SetMode(mode)
	s.metrics.Remaining.Set(0)

	s.logger.Info("mode changed", "from", previous, "to", mode, "cancelled", cancelled)
	return cancelled
}

func (s *countdownService) Start(ctx context.Context, fields domain.Fields) (domain.Snapshot, error) {
	if s.countdown.Phase() != domain.PhaseIdle {
		return s.countdown.Snapshot(), nil
	}

	snap, err := s.countdown.Start(fields.Resolver())
	if err != nil {
		kind := domain.ValidationKind(err)
		s.metrics.Rejected.WithLabelValues(kind).Inc()
		s.logger.Info("start rejected", "mode", s.countdown.Mode(), "reason", kind, "error", err)
		return snap, err
	}

	s.metrics.Started.Inc()
	s.metrics.Remaining.Set(float64(snap.Breakdown.Total))
	s.logger.Info("countdown started",
		"countdown_id", snap.ID,
		"mode", snap.Mode,
		"target", snap.Target,
		"remaining_seconds", snap.Breakdown.Total,
	)

	// A target under a millisecond away completes on the first tick
	if snap.Phase == domain.PhaseCompleted {
		s.complete(ctx, snap)
	}
	return snap, nil
}

func (s *countdownService) Tick(ctx context.Context) (domain.Snapshot, bool) {
	snap, done := s.countdown.Tick()
	if snap.Phase == domain.PhaseRunning {
		s.metrics.Remaining.Set(float64(snap.Breakdown.Total))
	}
	if !done {
		return snap, false
	}

	s.complete(ctx, snap)
	return snap, true
}

func (s *countdownService) complete(ctx context.Context, snap domain.Snapshot) {
	s.metrics.Remaining.Set(0)
	s.metrics.Completed.Inc()
	s.record(ctx, domain.OutcomeCompleted)
	s.logger.Info("countdown completed", "countdown_id", snap.ID, "mode", snap.Mode)

	s.notifier.Notify()
}

func (s *countdownService) Pause(ctx context.Context) (domain.Snapshot, bool) {
	if !s.countdown.Pause() {
		if s.countdown.Phase() == domain.PhaseRunning {
			// Already due, so finish instead of freezing at zero
			snap, _ := s.Tick(ctx)
			return snap, false
		}
		return s.countdown.Snapshot(), false
	}

	snap := s.countdown.Snapshot()
	s.metrics.Paused.Inc()
	s.logger.Info("countdown paused", "countdown_id", snap.ID, "remaining_seconds", snap.Breakdown.Total)
	return snap, true
}

func (s *countdownService) Resume(ctx context.Context) (domain.Snapshot, bool) {
	snap, ok := s.countdown.Resume()
	if !ok {
		return snap, false
	}

	s.metrics.Remaining.Set(float64(snap.Breakdown.Total))
	s.logger.Info("countdown resumed", "countdown_id", snap.ID, "target", snap.Target)

	// Resume runs an immediate tick, which can already be the last one
	if snap.Phase == domain.PhaseCompleted {
		s.complete(ctx, snap)
	}
	return snap, true
}

func (s *countdownService) Stop(ctx context.Context) domain.Snapshot {
	return s.clear(ctx, domain.ClearStop)
}

func (s *countdownService) Reset(ctx context.Context) domain.Snapshot {
	return s.clear(ctx, domain.ClearReset)
}

func (s *countdownService) clear(ctx context.Context, intent domain.ClearIntent) domain.Snapshot {
	id := s.countdown.ID()
	if s.countdown.Active() {
		outcome := domain.OutcomeReset
		if intent == domain.ClearStop {
			outcome = domain.OutcomeStopped
		}
		s.record(ctx, outcome)
		s.metrics.Cancelled.WithLabelValues(string(outcome)).Inc()
	}

	s.countdown.Clear(intent)
	s.metrics.Remaining.Set(0)

	if id != "" {
		s.logger.Info("countdown cleared", "countdown_id", id, "intent", clearIntentName(intent))
	}
	return s.countdown.Snapshot()
}

func (s *countdownService) History(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	return s.history.List(ctx, limit)
}

func (s *countdownService) ClearHistory(ctx context.Context) error {
	if err := s.history.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("history cleared")
	return nil
}

// record appends the current instance to the history log. Failures are
// logged only: a countdown never fails because its log could not be written.
func (s *countdownService) record(ctx context.Context, outcome domain.Outcome) {
	entry := domain.NewHistoryEntry(s.countdown, outcome, s.clock.Now())
	if entry == nil {
		return
	}
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.Error("failed to record countdown history",
			"countdown_id", entry.ID,
			"outcome", outcome,
			"error", err,
		)
	}
}

func clearIntentName(intent domain.ClearIntent) string {
	if intent == domain.ClearStop {
		return "stop"
	}
	return "reset"
}
