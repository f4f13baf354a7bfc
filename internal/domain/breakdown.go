package domain

import "fmt"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// Breakdown is remaining time split into calendar units. Days is unbounded.
type Breakdown struct {
	Days    int64
	Hours   int
	Minutes int
	Seconds int
	Total   int64 // whole seconds
}

// BreakdownFromMillis decomposes ms using integer arithmetic on whole seconds.
// Negative input yields the zero breakdown.
func BreakdownFromMillis(ms int64) Breakdown {
	if ms <= 0 {
		return Breakdown{}
	}
	total := ms / 1000
	return Breakdown{
		Days:    total / secondsPerDay,
		Hours:   int((total % secondsPerDay) / secondsPerHour),
		Minutes: int((total % secondsPerHour) / secondsPerMinute),
		Seconds: int(total % secondsPerMinute),
		Total:   total,
	}
}

// IsZero reports whether nothing remains
func (b Breakdown) IsZero() bool { return b.Total == 0 }

// String renders the breakdown as "DDd HH:MM:SS"
func (b Breakdown) String() string {
	return fmt.Sprintf("%02dd %02d:%02d:%02d", b.Days, b.Hours, b.Minutes, b.Seconds)
}

// Urgency classifies remaining time for presentation cues
type Urgency string

const (
	UrgencyNone     Urgency = ""
	UrgencyNormal   Urgency = "normal"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"
)

const (
	criticalSeconds = 10
	warningSeconds  = 60
)

// UrgencyFor classifies whole remaining seconds. Both bounds are inclusive on
// the more urgent side: 10s is critical, 60s is warning.
func UrgencyFor(totalSeconds int64) Urgency {
	switch {
	case totalSeconds <= criticalSeconds:
		return UrgencyCritical
	case totalSeconds <= warningSeconds:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
