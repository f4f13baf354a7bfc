package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mode selects how a new countdown's end time is computed
type Mode string

const (
	ModeTarget   Mode = "target"
	ModeDuration Mode = "duration"
)

// ParseMode converts a config or flag value into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTarget, ModeDuration:
		return Mode(s), nil
	case "date":
		return ModeTarget, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeTarget, ModeDuration)
}

// Phase is the countdown's lifecycle stage
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhasePaused    Phase = "paused"
	PhaseCompleted Phase = "completed"
)

// StatusTag tells the presentation layer which status message to show.
// Stop and reset clear identically and only differ here.
type StatusTag string

const (
	StatusReady     StatusTag = "ready"
	StatusRunning   StatusTag = "running"
	StatusPaused    StatusTag = "paused"
	StatusStopped   StatusTag = "stopped"
	StatusCompleted StatusTag = "completed"
)

// ClearIntent distinguishes a reset from a stop
type ClearIntent int

const (
	ClearReset ClearIntent = iota
	ClearStop
)

// Clock supplies wall-clock time to the engine
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the real wall clock
var SystemClock Clock = systemClock{}

// Snapshot is the observable state handed to the presentation layer
type Snapshot struct {
	ID        string
	Phase     Phase
	Mode      Mode
	Status    StatusTag
	Breakdown Breakdown
	Urgency   Urgency
	Target    time.Time // zero unless running
	StartedAt time.Time
}

// Countdown is the timer engine. It performs no scheduling of its own: a
// driver is expected to call Tick about once per second while the phase is
// PhaseRunning and to stop once it leaves that phase. Every command is safe
// to call in any phase; commands that do not apply are no-ops.
//
// A Countdown is not safe for concurrent use.
type Countdown struct {
	clock Clock
	newID func() string

	mode   Mode
	phase  Phase
	status StatusTag

	id        string
	startedAt time.Time
	initial   time.Duration

	// target is authoritative while running, remaining while paused
	target    time.Time
	remaining int64

	last Breakdown
}

// NewCountdown creates an idle countdown in the given mode
func NewCountdown(clock Clock, mode Mode) *Countdown {
	if clock == nil {
		clock = SystemClock
	}
	if mode != ModeTarget && mode != ModeDuration {
		mode = ModeTarget
	}
	return &Countdown{
		clock:  clock,
		newID:  uuid.NewString,
		mode:   mode,
		phase:  PhaseIdle,
		status: StatusReady,
	}
}

// Phase returns the current lifecycle stage
func (c *Countdown) Phase() Phase { return c.phase }

// Mode returns the mode used for the next Start
func (c *Countdown) Mode() Mode { return c.mode }

// ID returns the identifier of the current countdown instance, or "" when idle
func (c *Countdown) ID() string { return c.id }

// StartedAt returns when the current instance was started
func (c *Countdown) StartedAt() time.Time { return c.startedAt }

// Initial returns the full length of the current instance as resolved at start
func (c *Countdown) Initial() time.Duration { return c.initial }

// Target returns the end instant and true while running
func (c *Countdown) Target() (time.Time, bool) {
	if c.phase != PhaseRunning {
		return time.Time{}, false
	}
	return c.target, true
}

// Remaining returns the frozen remaining milliseconds and true while paused
func (c *Countdown) Remaining() (int64, bool) {
	if c.phase != PhasePaused {
		return 0, false
	}
	return c.remaining, true
}

// Active reports whether a countdown is running or paused
func (c *Countdown) Active() bool {
	return c.phase == PhaseRunning || c.phase == PhasePaused
}

// SetMode changes the mode. A running or paused countdown is stopped first;
// the return value reports whether that happened so callers can tell the
// user their countdown was cancelled. A completed countdown is cleared.
func (c *Countdown) SetMode(mode Mode) bool {
	if mode != ModeTarget && mode != ModeDuration {
		return false
	}
	cancelled := false
	switch c.phase {
	case PhaseRunning, PhasePaused:
		c.Clear(ClearStop)
		cancelled = true
	case PhaseCompleted:
		c.Clear(ClearReset)
	}
	c.mode = mode
	return cancelled
}

// Start begins a countdown using resolver to compute the end instant. It only
// acts in PhaseIdle. A resolver failure leaves the engine untouched and is
// returned to the caller.
func (c *Countdown) Start(resolver EndTimeResolver) (Snapshot, error) {
	if c.phase != PhaseIdle {
		return c.Snapshot(), nil
	}
	if resolver == nil {
		return c.Snapshot(), fmt.Errorf("%w: no end time given", ErrMissingFields)
	}

	now := c.clock.Now()
	end, err := resolver(c.mode, now)
	if err != nil {
		return c.Snapshot(), err
	}
	if !end.After(now) {
		if c.mode == ModeDuration {
			return c.Snapshot(), ErrNonPositiveDuration
		}
		return c.Snapshot(), ErrNonFutureDate
	}

	c.id = c.newID()
	c.startedAt = now
	c.initial = end.Sub(now)
	c.target = end
	c.remaining = 0
	c.phase = PhaseRunning
	c.status = StatusRunning

	snap, _ := c.Tick()
	return snap, nil
}

// Tick recomputes the remaining time. The bool is true exactly once per
// countdown, on the tick that reaches zero. Outside PhaseRunning it returns
// the unchanged snapshot and false.
func (c *Countdown) Tick() (Snapshot, bool) {
	if c.phase != PhaseRunning {
		return c.Snapshot(), false
	}

	remaining := c.target.Sub(c.clock.Now()).Milliseconds()
	if remaining <= 0 {
		c.phase = PhaseCompleted
		c.status = StatusCompleted
		c.target = time.Time{}
		c.remaining = 0
		c.last = Breakdown{}
		return c.Snapshot(), true
	}

	c.last = BreakdownFromMillis(remaining)
	return c.Snapshot(), false
}

// Pause freezes the countdown, converting the target into a remaining duration.
// A countdown that is already due is left running so the next Tick completes it.
func (c *Countdown) Pause() bool {
	if c.phase != PhaseRunning {
		return false
	}

	remaining := c.target.Sub(c.clock.Now()).Milliseconds()
	if remaining <= 0 {
		return false
	}
	c.remaining = remaining
	c.target = time.Time{}
	c.last = BreakdownFromMillis(remaining)
	c.phase = PhasePaused
	c.status = StatusPaused
	return true
}

// Resume restarts a paused countdown from the frozen remaining duration
func (c *Countdown) Resume() (Snapshot, bool) {
	if c.phase != PhasePaused {
		return c.Snapshot(), false
	}

	c.target = c.clock.Now().Add(time.Duration(c.remaining) * time.Millisecond)
	c.remaining = 0
	c.phase = PhaseRunning
	c.status = StatusRunning

	snap, _ := c.Tick()
	return snap, true
}

// Reset clears the countdown back to PhaseIdle from any phase
func (c *Countdown) Reset() { c.Clear(ClearReset) }

// Stop clears the countdown back to PhaseIdle from any phase
func (c *Countdown) Stop() { c.Clear(ClearStop) }

// Clear drops all countdown state. The intent only changes the status tag.
func (c *Countdown) Clear(intent ClearIntent) {
	c.id = ""
	c.startedAt = time.Time{}
	c.initial = 0
	c.target = time.Time{}
	c.remaining = 0
	c.last = Breakdown{}
	c.phase = PhaseIdle
	if intent == ClearStop {
		c.status = StatusStopped
	} else {
		c.status = StatusReady
	}
}

// Snapshot returns the current observable state without advancing time
func (c *Countdown) Snapshot() Snapshot {
	snap := Snapshot{
		ID:        c.id,
		Phase:     c.phase,
		Mode:      c.mode,
		Status:    c.status,
		StartedAt: c.startedAt,
	}

	switch c.phase {
	case PhaseRunning:
		snap.Breakdown = c.last
		snap.Urgency = UrgencyFor(c.last.Total)
		snap.Target = c.target
	case PhasePaused:
		snap.Breakdown = c.last
		snap.Urgency = UrgencyFor(c.last.Total)
	case PhaseCompleted:
		snap.Urgency = UrgencyFor(0)
	}

	return snap
}
