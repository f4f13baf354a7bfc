package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/domain"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage saved countdowns",
	Long:  `List, add, or remove named countdowns stored in the config file.`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved countdowns",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appInstance.Config
		names := cfg.PresetNames()
		if len(names) == 0 {
			fmt.Println("No presets saved")
			return nil
		}

		for _, name := range names {
			fmt.Printf("%-20s %s\n", name, cfg.Presets[name])
		}
		return nil
	},
}

var presetsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Save a countdown under a name",
	Example: `  countdown presets add tea --in 3m
  countdown presets add launch --date 2027-01-01 --time 09:00`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		preset, err := presetFromFlags(cmd)
		if err != nil {
			return err
		}

		// Validate now so a broken preset never reaches the config file
		if preset.Mode() == domain.ModeTarget {
			if _, err := domain.ResolveTarget(preset.Date, preset.Time, time.Now()); err != nil {
				return fmt.Errorf("invalid preset: %w", err)
			}
		} else if preset.Duration() <= 0 {
			return fmt.Errorf("invalid preset: %w", domain.ErrNonPositiveDuration)
		}

		_, replaced := appInstance.Config.Presets[name]
		appInstance.Config.Presets[name] = preset
		if err := appInstance.SaveConfig(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		if replaced {
			fmt.Printf("✓ Preset %s updated: %s\n", name, preset)
		} else {
			fmt.Printf("✓ Preset %s saved: %s\n", name, preset)
		}
		return nil
	},
}

var presetsRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Delete a saved countdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, ok := appInstance.Config.Presets[name]; !ok {
			return fmt.Errorf("preset %q not found", name)
		}

		delete(appInstance.Config.Presets, name)
		if err := appInstance.SaveConfig(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("✓ Preset %s removed\n", name)
		return nil
	},
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsAddCmd)
	presetsCmd.AddCommand(presetsRemoveCmd)

	addCountdownFlags(presetsAddCmd)
}

// presetFromFlags builds a preset from either the date/time or duration flags
func presetFromFlags(cmd *cobra.Command) (config.Preset, error) {
	flags := cmd.Flags()

	targetSet := flags.Changed("date") || flags.Changed("time")
	durationSet := flags.Changed("in") || flags.Changed("hours") ||
		flags.Changed("minutes") || flags.Changed("seconds")

	switch {
	case targetSet && durationSet:
		return config.Preset{}, errors.New("use either --date/--time or a duration, not both")

	case targetSet:
		date, _ := flags.GetString("date")
		clock, _ := flags.GetString("time")
		if date == "" || clock == "" {
			return config.Preset{}, fmt.Errorf("%w: both --date and --time are required", domain.ErrMissingFields)
		}
		return config.Preset{Date: date, Time: clock}, nil

	case durationSet:
		if flags.Changed("in") {
			d, _ := flags.GetDuration("in")
			total := int(d / time.Second)
			return config.Preset{Hours: total / 3600, Minutes: total % 3600 / 60, Seconds: total % 60}, nil
		}
		h, _ := flags.GetInt("hours")
		m, _ := flags.GetInt("minutes")
		s, _ := flags.GetInt("seconds")
		if h < 0 || m < 0 || s < 0 {
			return config.Preset{}, fmt.Errorf("%w: values must not be negative", domain.ErrNonPositiveDuration)
		}
		return config.Preset{Hours: h, Minutes: m, Seconds: s}, nil
	}

	return config.Preset{}, errors.New("give a duration (--in, --hours, --minutes, --seconds) or --date and --time")
}
