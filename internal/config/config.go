package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/andy/countdown/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings (countdown history log)
	Database DatabaseConfig `yaml:"database"`

	// Defaults pre-filled into the countdown form
	Defaults DefaultsConfig `yaml:"defaults"`

	// Completion alert
	Alert AlertConfig `yaml:"alert"`

	// Log file settings
	Log LogConfig `yaml:"log"`

	// Named countdowns usable from the CLI and TUI
	Presets map[string]Preset `yaml:"presets,omitempty"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type DefaultsConfig struct {
	Mode           string `yaml:"mode"`             // "target" or "duration"
	DateOffsetDays int    `yaml:"date_offset_days"` // Default target date is today + N days
	Time           string `yaml:"time"`             // Default target time of day (HH:MM)
	Hours          int    `yaml:"hours"`
	Minutes        int    `yaml:"minutes"`
	Seconds        int    `yaml:"seconds"`
}

type AlertConfig struct {
	Sound       bool    `yaml:"sound"`        // Play a chime on completion
	FrequencyHz float64 `yaml:"frequency_hz"` // Chime pitch
	DurationMS  int     `yaml:"duration_ms"`  // Length of each chime note
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"` // debug, info, warning, error
}

// Preset is a saved countdown. Either a duration or a date/time pair is set.
type Preset struct {
	Hours   int    `yaml:"hours,omitempty"`
	Minutes int    `yaml:"minutes,omitempty"`
	Seconds int    `yaml:"seconds,omitempty"`
	Date    string `yaml:"date,omitempty"`
	Time    string `yaml:"time,omitempty"`
}

// Mode returns the countdown mode the preset needs
func (p Preset) Mode() domain.Mode {
	if p.Date != "" || p.Time != "" {
		return domain.ModeTarget
	}
	return domain.ModeDuration
}

// Fields converts the preset into resolver input
func (p Preset) Fields() domain.Fields {
	if p.Mode() == domain.ModeTarget {
		return domain.Fields{Date: p.Date, Time: p.Time}
	}
	return domain.DurationFields(p.Duration())
}

// Duration returns the preset length in duration mode
func (p Preset) Duration() time.Duration {
	return time.Duration(p.Hours)*time.Hour +
		time.Duration(p.Minutes)*time.Minute +
		time.Duration(p.Seconds)*time.Second
}

// String describes the preset for listings
func (p Preset) String() string {
	if p.Mode() == domain.ModeTarget {
		return fmt.Sprintf("until %s %s", p.Date, p.Time)
	}
	return fmt.Sprintf("for %s", p.Duration())
}

// DefaultConfigPath returns ~/.config/countdown/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "countdown", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "countdown", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "countdown", "history.db"),
		},
		Defaults: DefaultsConfig{
			Mode:           string(domain.ModeTarget),
			DateOffsetDays: 7,
			Time:           "00:00",
			Minutes:        5,
		},
		Alert: AlertConfig{
			Sound:       true,
			FrequencyHz: 880,
			DurationMS:  250,
		},
		Log: LogConfig{
			Path:  filepath.Join(homeDir, ".config", "countdown", "countdown.log"),
			Level: "info",
		},
		Presets: map[string]Preset{},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Presets == nil {
		cfg.Presets = map[string]Preset{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate checks values the rest of the program relies on
func (c *Config) Validate() error {
	if _, err := domain.ParseMode(c.Defaults.Mode); err != nil {
		return fmt.Errorf("defaults.mode: %w", err)
	}
	if c.Defaults.DateOffsetDays < 0 {
		return fmt.Errorf("defaults.date_offset_days must not be negative")
	}
	if _, err := time.Parse(domain.TimeLayout, c.Defaults.Time); err != nil {
		return fmt.Errorf("defaults.time must be HH:MM: %w", err)
	}
	if _, ok := domain.DurationSeconds(c.Defaults.Hours, c.Defaults.Minutes, c.Defaults.Seconds); !ok {
		return fmt.Errorf("defaults duration is negative or too long")
	}
	for name, p := range c.Presets {
		if p.Mode() != domain.ModeDuration {
			continue
		}
		total, ok := domain.DurationSeconds(p.Hours, p.Minutes, p.Seconds)
		if !ok {
			return fmt.Errorf("preset %q duration is negative or too long", name)
		}
		if total == 0 {
			return fmt.Errorf("preset %q has no duration", name)
		}
	}
	return nil
}

// DefaultMode returns the configured starting mode
func (c *Config) DefaultMode() domain.Mode {
	mode, err := domain.ParseMode(c.Defaults.Mode)
	if err != nil {
		return domain.ModeTarget
	}
	return mode
}

// DefaultFields returns the form values shown before the user edits anything.
// The target date is today plus the configured offset, at the configured time.
func (c *Config) DefaultFields(now time.Time) domain.Fields {
	day := now.AddDate(0, 0, c.Defaults.DateOffsetDays)
	f := domain.DurationFields(time.Duration(c.Defaults.Hours)*time.Hour +
		time.Duration(c.Defaults.Minutes)*time.Minute +
		time.Duration(c.Defaults.Seconds)*time.Second)
	f.Date = day.Format(domain.DateLayout)
	f.Time = c.Defaults.Time
	return f
}

// PresetNames returns preset names in sorted order
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for database and logs)
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0755); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0755); err != nil {
		return err
	}

	return nil
}
