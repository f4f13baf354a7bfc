package domain

import "time"

// Outcome records how a countdown instance ended
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeStopped   Outcome = "stopped"
	OutcomeReset     Outcome = "reset"
)

// HistoryEntry is the log row written when a countdown instance ends
type HistoryEntry struct {
	ID        string
	Mode      Mode
	Duration  time.Duration // resolved length at start
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   Outcome
}

// NewHistoryEntry captures the current instance of c. It returns nil if c
// has no instance to record.
func NewHistoryEntry(c *Countdown, outcome Outcome, endedAt time.Time) *HistoryEntry {
	if c.ID() == "" {
		return nil
	}
	return &HistoryEntry{
		ID:        c.ID(),
		Mode:      c.Mode(),
		Duration:  c.Initial(),
		StartedAt: c.StartedAt(),
		EndedAt:   endedAt,
		Outcome:   outcome,
	}
}

