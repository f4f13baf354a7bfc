package repository

import (
	"time"
)

// timeLayout is the RFC3339 format for storing times in SQLite
const timeLayout = time.RFC3339

// parseTime parses a time string in RFC3339 format
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// formatTime formats t as RFC3339 in local time
func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}
