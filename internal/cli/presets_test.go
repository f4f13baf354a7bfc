package cli

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/domain"
)

func TestPresetFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    config.Preset
		wantErr error
	}{
		{"go duration", []string{"--in", "1h30m5s"}, config.Preset{Hours: 1, Minutes: 30, Seconds: 5}, nil},
		{"parts", []string{"--minutes", "3"}, config.Preset{Minutes: 3}, nil},
		{"target", []string{"--date", "2027-01-01", "--time", "09:00"}, config.Preset{Date: "2027-01-01", Time: "09:00"}, nil},
		{"target needs both", []string{"--date", "2027-01-01"}, config.Preset{}, domain.ErrMissingFields},
		{"negative", []string{"--minutes=-3"}, config.Preset{}, domain.ErrNonPositiveDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := presetFromFlags(newFlagCmd(t, tt.args...))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}

	if _, err := presetFromFlags(newFlagCmd(t)); err == nil {
		t.Fatalf("expected an error with no flags")
	}
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"yes":   true,
		"n\n":   false,
		"\n":    false,
		"":      false,
	}

	for input, want := range tests {
		if got := confirm(strings.NewReader(input), io.Discard, "Continue?"); got != want {
			t.Errorf("confirm(%q) = %v, want %v", input, got, want)
		}
	}
}
