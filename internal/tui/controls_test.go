package tui

import (
	"fmt"
	"testing"

	"github.com/andy/countdown/internal/domain"
)

func TestControlsFor(t *testing.T) {
	tests := []struct {
		phase domain.Phase
		want  Controls
	}{
		{domain.PhaseIdle, Controls{StartVisible: true, InputsEnabled: true, ModeSwitchEnabled: true}},
		{domain.PhaseRunning, Controls{PauseVisible: true, ResetEnabled: true, StopEnabled: true, ModeSwitchEnabled: true}},
		{domain.PhasePaused, Controls{ResumeVisible: true, ResetEnabled: true, StopEnabled: true, ModeSwitchEnabled: true}},
		{domain.PhaseCompleted, Controls{ResetEnabled: true, InputsEnabled: true, ModeSwitchEnabled: true}},
	}

	for _, tt := range tests {
		if got := ControlsFor(tt.phase); got != tt.want {
			t.Errorf("ControlsFor(%s) = %+v, want %+v", tt.phase, got, tt.want)
		}
	}
}

func TestStatusMessage(t *testing.T) {
	tests := map[domain.StatusTag]string{
		domain.StatusReady:     "Ready to start",
		domain.StatusRunning:   "Countdown in progress...",
		domain.StatusPaused:    "Countdown paused",
		domain.StatusStopped:   "Countdown stopped",
		domain.StatusCompleted: "COUNTDOWN COMPLETE!",
	}

	for tag, want := range tests {
		if got := StatusMessage(tag); got != want {
			t.Errorf("StatusMessage(%q) = %q, want %q", tag, got, want)
		}
	}
}

func TestValidationMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrMissingFields, "Please select a date and time"},
		{fmt.Errorf("%w: invalid date", domain.ErrMissingFields), "Please select a date and time"},
		{domain.ErrNonFutureDate, "Please select a future date and time"},
		{domain.ErrNonPositiveDuration, "Please set a duration greater than 0"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := ValidationMessage(tt.err); got != tt.want {
			t.Errorf("ValidationMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
