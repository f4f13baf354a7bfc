package tui

import (
	"errors"

	"github.com/andy/countdown/internal/domain"
)

// Controls says which countdown affordances are offered in a phase.
// It is derived from the phase alone and never stored.
type Controls struct {
	StartVisible      bool
	PauseVisible      bool
	ResumeVisible     bool
	ResetEnabled      bool
	StopEnabled       bool
	InputsEnabled     bool
	ModeSwitchEnabled bool
}

// ControlsFor maps an engine phase to the controls shown for it
func ControlsFor(p domain.Phase) Controls {
	switch p {
	case domain.PhaseRunning:
		return Controls{
			PauseVisible:      true,
			ResetEnabled:      true,
			StopEnabled:       true,
			ModeSwitchEnabled: true,
		}
	case domain.PhasePaused:
		return Controls{
			ResumeVisible:     true,
			ResetEnabled:      true,
			StopEnabled:       true,
			ModeSwitchEnabled: true,
		}
	case domain.PhaseCompleted:
		return Controls{
			ResetEnabled:      true,
			InputsEnabled:     true,
			ModeSwitchEnabled: true,
		}
	}
	return Controls{
		StartVisible:      true,
		InputsEnabled:     true,
		ModeSwitchEnabled: true,
	}
}

// StatusMessage returns the status line text for a status tag
func StatusMessage(s domain.StatusTag) string {
	switch s {
	case domain.StatusRunning:
		return "Countdown in progress..."
	case domain.StatusPaused:
		return "Countdown paused"
	case domain.StatusStopped:
		return "Countdown stopped"
	case domain.StatusCompleted:
		return "COUNTDOWN COMPLETE!"
	}
	return "Ready to start"
}

// ValidationMessage turns a rejected start into something to show the user
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "Please select a date and time"
	case errors.Is(err, domain.ErrNonFutureDate):
		return "Please select a future date and time"
	case errors.Is(err, domain.ErrNonPositiveDuration):
		return "Please set a duration greater than 0"
	case err != nil:
		return err.Error()
	}
	return ""
}
