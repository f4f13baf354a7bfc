package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// New opens (or creates) the log file at path and returns a JSON logger
// writing to it. The TUI owns the terminal, so logs never go to stdout.
// The returned closer closes the file.
func New(path, level string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewWithWriter(f, level), f, nil
}

// NewWithWriter returns a JSON logger writing to w
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level(level)}))
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Level maps a level name onto a slog.Level. Unknown names mean info.
func Level(s string) slog.Level {
	m := map[string]slog.Level{
		"trace":   slog.Level(-8),
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}

	if l, ok := m[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}

	return slog.LevelInfo
}
