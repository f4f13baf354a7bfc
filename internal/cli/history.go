package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/service"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished countdowns",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List finished countdowns, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := appInstance.CountdownService.History(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No countdowns recorded yet")
			return nil
		}

		fmt.Printf("%-10s %-9s %-17s %-17s %-12s %-10s\n", "ID", "Mode", "Started", "Ended", "Length", "Outcome")
		fmt.Println("--------------------------------------------------------------------------------")

		completed := 0
		for _, entry := range entries {
			fmt.Printf("%-10s %-9s %-17s %-17s %-12s %-10s\n",
				truncate(entry.ID, 8),
				entry.Mode,
				entry.StartedAt.Format("2006-01-02 15:04"),
				entry.EndedAt.Format("2006-01-02 15:04"),
				formatDuration(entry.Duration),
				entry.Outcome,
			)
			if entry.Outcome == domain.OutcomeCompleted {
				completed++
			}
		}

		fmt.Println("--------------------------------------------------------------------------------")
		fmt.Printf("Total: %d countdowns, %d completed\n", len(entries), completed)
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize finished countdowns",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		week, _ := cmd.Flags().GetBool("week")
		today, _ := cmd.Flags().GetBool("today")

		var (
			summary *service.HistorySummary
			err     error
			title   string
		)
		switch {
		case week:
			summary, err = appInstance.ReportService.GetWeekSummary(ctx, time.Now())
			title = "This week"
		case today:
			summary, err = appInstance.ReportService.GetDailySummary(ctx, time.Now())
			title = "Today"
		default:
			summary, err = appInstance.ReportService.GetOverallSummary(ctx)
			title = "All time"
		}
		if err != nil {
			return fmt.Errorf("failed to summarize history: %w", err)
		}

		if week {
			title = fmt.Sprintf("Week of %s", summary.Start.Format("2006-01-02"))
		}
		printSummary(cmd.OutOrStdout(), title, summary)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded countdowns",
	RunE:  clearHistory,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyStatsCmd.Flags().Bool("week", false, "Only this week (Monday to Sunday)")
	historyStatsCmd.Flags().Bool("today", false, "Only today")
	historyStatsCmd.MarkFlagsMutuallyExclusive("week", "today")
	historyClearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	historyListCmd.Flags().Int("limit", 20, "Maximum number of countdowns to show (0 for all)")
}

func printSummary(out io.Writer, title string, s *service.HistorySummary) {
	fmt.Fprintf(out, "%s\n", title)
	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintf(out, "%-22s %d\n", "Countdowns:", s.Count)
	fmt.Fprintf(out, "%-22s %d\n", "Completed:", s.ByOutcome[domain.OutcomeCompleted])
	fmt.Fprintf(out, "%-22s %d\n", "Stopped:", s.ByOutcome[domain.OutcomeStopped])
	fmt.Fprintf(out, "%-22s %d\n", "Reset:", s.ByOutcome[domain.OutcomeReset])
	fmt.Fprintf(out, "%-22s %.0f%%\n", "Completion rate:", s.CompletionRate()*100)
	fmt.Fprintf(out, "%-22s %s\n", "Time counted down:", formatDuration(s.CountedTime))
	fmt.Fprintf(out, "%-22s %s\n", "Longest:", formatDuration(s.Longest))
	fmt.Fprintf(out, "%-22s %d target, %d duration\n", "By mode:", s.ByMode[domain.ModeTarget], s.ByMode[domain.ModeDuration])
}
