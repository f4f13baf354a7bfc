package cli

import (
	"fmt"

	"github.com/andy/countdown/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal UI",
	Long:  `Launch the interactive terminal user interface for countdown.`,
	RunE:  launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) error {
	if err := tui.Run(appInstance); err != nil {
		appInstance.Logger.Error("tui exited with error", "error", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
