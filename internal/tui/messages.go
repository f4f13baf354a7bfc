package tui

import "github.com/andy/countdown/internal/domain"

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// countdownTickMsg drives the countdown once per second. seq identifies the
// tick chain that scheduled it; ticks from an older chain are dropped.
type countdownTickMsg struct {
	seq int
}

// historyLoadedMsg is sent when the history log has been read
type historyLoadedMsg struct {
	entries []*domain.HistoryEntry
	err     error
}

// historyClearedMsg is sent after the history log was deleted
type historyClearedMsg struct {
	err error
}
