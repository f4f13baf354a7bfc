package cli

import (
	"github.com/andy/countdown/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "countdown",
	Short: "A terminal countdown timer",
	Long: `Countdown counts down to a date and time, or for a fixed duration,
showing days, hours, minutes and seconds until it completes.

By default, running countdown without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
