package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/countdown/internal/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.DateOffsetDays != 7 || cfg.Defaults.Time != "00:00" {
		t.Fatalf("unexpected defaults %+v", cfg.Defaults)
	}
	if cfg.DefaultMode() != domain.ModeTarget {
		t.Fatalf("expected target mode default, got %s", cfg.DefaultMode())
	}
}

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countdown", "config.yaml")

	cfg := DefaultConfig()
	cfg.Defaults.Mode = "duration"
	cfg.Presets["tea"] = Preset{Minutes: 3}
	cfg.Presets["launch"] = Preset{Date: "2027-01-01", Time: "09:00"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.DefaultMode() != domain.ModeDuration {
		t.Fatalf("expected duration mode, got %s", loaded.DefaultMode())
	}
	if got := loaded.PresetNames(); len(got) != 2 || got[0] != "launch" || got[1] != "tea" {
		t.Fatalf("unexpected preset names %v", got)
	}
	if loaded.Presets["tea"].Mode() != domain.ModeDuration || loaded.Presets["tea"].Duration() != 3*time.Minute {
		t.Fatalf("unexpected tea preset %+v", loaded.Presets["tea"])
	}
	if loaded.Presets["launch"].Mode() != domain.ModeTarget {
		t.Fatalf("expected launch to be a target preset")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"bad mode":  "defaults:\n  mode: sometimes\n",
		"bad time":  "defaults:\n  time: noon\n",
		"empty tea": "presets:\n  tea: {}\n",
		"huge tea":  "presets:\n  tea:\n    hours: 9000000000000\n",
		"minus tea": "presets:\n  tea:\n    minutes: -5\n",
		"huge def":  "defaults:\n  hours: 3000000\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(body), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestDefaultFields(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 12, 28, 15, 4, 0, 0, time.Local)

	f := cfg.DefaultFields(now)
	if f.Date != "2027-01-04" || f.Time != "00:00" {
		t.Fatalf("unexpected target defaults %+v", f)
	}
	if f.Hours != "0" || f.Minutes != "5" || f.Seconds != "0" {
		t.Fatalf("unexpected duration defaults %+v", f)
	}
}

func TestPresetFields(t *testing.T) {
	p := Preset{Hours: 1, Minutes: 90}
	f := p.Fields()
	if f.Hours != "2" || f.Minutes != "30" || f.Seconds != "0" {
		t.Fatalf("unexpected fields %+v", f)
	}
}
