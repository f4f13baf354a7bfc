package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andy/countdown/internal/config"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset stored data",
	Long: `Reset stored data.

Examples:
  countdown reset history    # Delete every recorded countdown
  countdown reset config     # Restore the default config (presets are lost)`,
}

var resetHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Delete all recorded countdowns",
	RunE:  clearHistory,
}

var resetConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Restore the default configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will overwrite your config and delete ALL presets. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := config.DefaultConfig().Save(config.DefaultConfigPath()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Printf("Default config written to %s\n", config.DefaultConfigPath())
		return nil
	},
}

func clearHistory(cmd *cobra.Command, args []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !confirmPrompt("This will delete ALL recorded countdowns. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := appInstance.CountdownService.ClearHistory(context.Background()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Println("Countdown history has been deleted.")
	return nil
}

func confirmPrompt(message string) bool {
	return confirm(os.Stdin, os.Stdout, message)
}

func confirm(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetHistoryCmd)
	resetCmd.AddCommand(resetConfigCmd)

	resetHistoryCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
