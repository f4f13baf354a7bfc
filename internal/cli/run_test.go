package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/andy/countdown/internal/alert"
	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/logging"
	"github.com/andy/countdown/internal/metrics"
	"github.com/andy/countdown/internal/service"
	"github.com/spf13/cobra"
)

type memHistoryRepo struct {
	entries []*domain.HistoryEntry
}

func (r *memHistoryRepo) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}
func (r *memHistoryRepo) List(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	return r.entries, nil
}
func (r *memHistoryRepo) Clear(ctx context.Context) error {
	r.entries = nil
	return nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addCountdownFlags(cmd)
	cmd.Flags().String("preset", "", "")
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestRunFields(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)
	cfg := config.DefaultConfig()
	cfg.Presets["tea"] = config.Preset{Minutes: 3}

	tests := []struct {
		name     string
		args     []string
		wantMode domain.Mode
		want     domain.Fields
		wantErr  bool
	}{
		{"defaults", nil, domain.ModeTarget, cfg.DefaultFields(now), false},
		{"go duration", []string{"--in", "90s"}, domain.ModeDuration, domain.Fields{Hours: "0", Minutes: "1", Seconds: "30"}, false},
		{"duration parts", []string{"--hours", "2", "--seconds", "5"}, domain.ModeDuration, domain.Fields{Hours: "2", Minutes: "0", Seconds: "5"}, false},
		{"time only is today", []string{"--time", "18:30"}, domain.ModeTarget, domain.Fields{Date: "2026-10-19", Time: "18:30"}, false},
		{"date only uses default time", []string{"--date", "2026-12-31"}, domain.ModeTarget, domain.Fields{Date: "2026-12-31", Time: "00:00"}, false},
		{"preset", []string{"--preset", "tea"}, domain.ModeDuration, domain.Fields{Hours: "0", Minutes: "3", Seconds: "0"}, false},
		{"unknown preset", []string{"--preset", "coffee"}, "", domain.Fields{}, true},
		{"mixed modes", []string{"--date", "2026-12-31", "--in", "1m"}, "", domain.Fields{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, fields, err := runFields(newFlagCmd(t, tt.args...), cfg, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.wantMode {
				t.Fatalf("expected mode %s, got %s", tt.wantMode, mode)
			}
			if fields != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, fields)
			}
		})
	}
}

func newDriveFixture(t *testing.T, d time.Duration) (service.CountdownService, *fakeClock, *memHistoryRepo) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)}
	repo := &memHistoryRepo{}
	svc := service.NewCountdownService(clock, domain.ModeDuration, repo, metrics.New(), alert.Silent{}, logging.Discard())
	if _, err := svc.Start(context.Background(), domain.DurationFields(d)); err != nil {
		t.Fatalf("start: %v", err)
	}
	return svc, clock, repo
}

func TestDriveCountdown_Completes(t *testing.T) {
	svc, clock, repo := newDriveFixture(t, 3*time.Second)

	ticks := make(chan time.Time, 1)
	clock.Advance(3 * time.Second)
	ticks <- clock.Now()

	var out bytes.Buffer
	if err := driveCountdown(context.Background(), svc, &out, ticks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "00d 00:00:03") {
		t.Fatalf("expected initial remaining time, got %q", out.String())
	}
	if !strings.Contains(out.String(), "COUNTDOWN COMPLETE!") {
		t.Fatalf("expected completion message, got %q", out.String())
	}
	if len(repo.entries) != 1 || repo.entries[0].Outcome != domain.OutcomeCompleted {
		t.Fatalf("expected completed history entry, got %+v", repo.entries)
	}
}

func TestDriveCountdown_AlreadyCompleted(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 59, 999_500_000, time.Local)}
	repo := &memHistoryRepo{}
	svc := service.NewCountdownService(clock, domain.ModeTarget, repo, metrics.New(), alert.Silent{}, logging.Discard())
	if _, err := svc.Start(context.Background(), domain.Fields{Date: "2026-10-19", Time: "12:01"}); err != nil {
		t.Fatalf("start: %v", err)
	}

	var out bytes.Buffer
	if err := driveCountdown(context.Background(), svc, &out, make(chan time.Time)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "COUNTDOWN COMPLETE!") {
		t.Fatalf("expected completion message, got %q", out.String())
	}
	if len(repo.entries) != 1 || repo.entries[0].Outcome != domain.OutcomeCompleted {
		t.Fatalf("expected completed history entry, got %+v", repo.entries)
	}
}

func TestDriveCountdown_CancelStops(t *testing.T) {
	svc, _, repo := newDriveFixture(t, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := driveCountdown(ctx, svc, &out, make(chan time.Time)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "Countdown stopped") {
		t.Fatalf("expected stop message, got %q", out.String())
	}
	if svc.Snapshot().Phase != domain.PhaseIdle {
		t.Fatalf("expected idle after cancel, got %s", svc.Snapshot().Phase)
	}
	if len(repo.entries) != 1 || repo.entries[0].Outcome != domain.OutcomeStopped {
		t.Fatalf("expected stopped history entry, got %+v", repo.entries)
	}
}
