package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/service"
	"github.com/andy/countdown/internal/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a countdown in the terminal without the TUI",
	Long: `Run a single countdown, printing the time left once per second until it
completes. Press Ctrl+C to stop it early.

With no flags the configured default mode and values are used.`,
	Example: `  countdown run --in 90s
  countdown run --hours 1 --minutes 30
  countdown run --date 2026-12-31 --time 23:59
  countdown run --preset tea --metrics-addr :9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		mode, fields, err := runFields(cmd, appInstance.Config, time.Now())
		if err != nil {
			return err
		}

		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			shutdown := serveMetrics(addr)
			defer shutdown()
		}

		svc := appInstance.CountdownService
		svc.SetMode(ctx, mode)
		if _, err := svc.Start(ctx, fields); err != nil {
			return fmt.Errorf("failed to start countdown: %w", err)
		}

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		return driveCountdown(ctx, svc, cmd.OutOrStdout(), ticker.C)
	},
}

func init() {
	addCountdownFlags(runCmd)
	runCmd.Flags().String("preset", "", "Use a saved preset")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while running")
}

// addCountdownFlags adds the target and duration flags shared by run and presets add
func addCountdownFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().String("time", "", "Target time of day (HH:MM)")
	cmd.Flags().Duration("in", 0, "Duration such as 90s or 1h15m")
	cmd.Flags().Int("hours", 0, "Duration hours")
	cmd.Flags().Int("minutes", 0, "Duration minutes")
	cmd.Flags().Int("seconds", 0, "Duration seconds")
}

// runFields works out the mode and raw fields from the run flags
func runFields(cmd *cobra.Command, cfg *config.Config, now time.Time) (domain.Mode, domain.Fields, error) {
	flags := cmd.Flags()
	defaults := cfg.DefaultFields(now)

	if flags.Changed("preset") {
		name, _ := flags.GetString("preset")
		p, ok := cfg.Presets[name]
		if !ok {
			return "", domain.Fields{}, fmt.Errorf("preset %q not found", name)
		}
		return p.Mode(), p.Fields(), nil
	}

	targetSet := flags.Changed("date") || flags.Changed("time")
	durationSet := flags.Changed("in") || flags.Changed("hours") ||
		flags.Changed("minutes") || flags.Changed("seconds")

	switch {
	case targetSet && durationSet:
		return "", domain.Fields{}, errors.New("use either --date/--time or a duration, not both")

	case targetSet:
		date, _ := flags.GetString("date")
		clock, _ := flags.GetString("time")
		if date == "" {
			date = now.Format(domain.DateLayout)
		}
		if clock == "" {
			clock = cfg.Defaults.Time
		}
		return domain.ModeTarget, domain.Fields{Date: date, Time: clock}, nil

	case durationSet:
		if flags.Changed("in") {
			d, _ := flags.GetDuration("in")
			return domain.ModeDuration, domain.DurationFields(d), nil
		}
		h, _ := flags.GetInt("hours")
		m, _ := flags.GetInt("minutes")
		s, _ := flags.GetInt("seconds")
		return domain.ModeDuration, domain.Fields{
			Hours:   strconv.Itoa(h),
			Minutes: strconv.Itoa(m),
			Seconds: strconv.Itoa(s),
		}, nil
	}

	return cfg.DefaultMode(), defaults, nil
}

// driveCountdown calls Tick for every value on ticks until the countdown
// completes or ctx is cancelled, which stops it.
func driveCountdown(ctx context.Context, svc service.CountdownService, out io.Writer, ticks <-chan time.Time) error {
	snap := svc.Snapshot()
	printSnapshot(out, snap)
	if snap.Phase == domain.PhaseCompleted {
		fmt.Fprintf(out, "\n%s\n", tui.StatusMessage(snap.Status))
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			snap := svc.Stop(context.Background())
			fmt.Fprintf(out, "\n%s\n", tui.StatusMessage(snap.Status))
			return nil

		case <-ticks:
			snap, done := svc.Tick(ctx)
			printSnapshot(out, snap)
			if done {
				fmt.Fprintf(out, "\n%s\n", tui.StatusMessage(snap.Status))
				return nil
			}
			if snap.Phase != domain.PhaseRunning {
				return nil
			}
		}
	}
}

func printSnapshot(out io.Writer, snap domain.Snapshot) {
	fmt.Fprintf(out, "\r%s  %-8s", snap.Breakdown, snap.Urgency)
}

// serveMetrics starts a /metrics endpoint and returns its shutdown func
func serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", appInstance.Metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appInstance.Logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	appInstance.Logger.Info("serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
