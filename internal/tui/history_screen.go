package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/countdown/internal/app"
	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	historyLimit   = 200
	historyPageLen = 12
)

func loadHistoryCmd(svc service.CountdownService) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.History(context.Background(), historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func clearHistoryCmd(svc service.CountdownService) tea.Cmd {
	return func() tea.Msg {
		return historyClearedMsg{err: svc.ClearHistory(context.Background())}
	}
}

var outcomeVerbs = map[domain.Outcome]string{
	domain.OutcomeCompleted: "Reached zero",
	domain.OutcomeStopped:   "Stopped",
	domain.OutcomeReset:     "Reset",
}

// HistoryModel lists finished countdowns, newest first
type HistoryModel struct {
	svc        service.CountdownService
	entries    []*domain.HistoryEntry
	loaded     bool
	cursor     int
	confirming bool
	err        error
	statusMsg  string
}

// NewHistoryModel creates the history screen
func NewHistoryModel(a *app.App) tea.Model {
	return newHistoryModel(a.CountdownService)
}

func newHistoryModel(svc service.CountdownService) *HistoryModel {
	return &HistoryModel{svc: svc}
}

// IsCapturingInput returns true while the clear confirmation is open
func (m *HistoryModel) IsCapturingInput() bool {
	return m.confirming
}

func (m *HistoryModel) Init() tea.Cmd {
	return loadHistoryCmd(m.svc)
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, loadHistoryCmd(m.svc)

	case historyLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = max(len(m.entries)-1, 0)
		}
		return m, nil

	case historyClearedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = "History cleared"
		m.cursor = 0
		return m, loadHistoryCmd(m.svc)

	case tea.KeyMsg:
		m.err = nil

		if m.confirming {
			m.confirming = false
			if key.Matches(msg, DefaultKeyMap.Yes) {
				return m, clearHistoryCmd(m.svc)
			}
			m.statusMsg = "Cancelled"
			return m, nil
		}

		m.statusMsg = ""
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.entries) > 0 {
				m.confirming = true
			}
		}
	}

	return m, nil
}

// View renders the history table
func (m *HistoryModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("History"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %s", m.err.Error())))
		b.WriteString("\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString("Loading history...\n")
	case len(m.entries) == 0:
		b.WriteString("No countdowns recorded yet.\n")
	default:
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%-17s %-9s %-12s %-10s", "Started", "Mode", "Length", "Outcome")))
		b.WriteString("\n")

		start := 0
		if m.cursor >= historyPageLen {
			start = m.cursor - historyPageLen + 1
		}
		end := min(start+historyPageLen, len(m.entries))

		for i := start; i < end; i++ {
			e := m.entries[i]
			row := fmt.Sprintf("%-17s %-9s %-12s %-10s",
				e.StartedAt.Format("2006-01-02 15:04"),
				e.Mode,
				formatLength(e.Duration),
				e.Outcome,
			)
			if i == m.cursor {
				row = selectedStyle.Render(row)
			}
			b.WriteString(row + "\n")
		}

		e := m.entries[m.cursor]
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("\n%s at %s (%s countdown)",
			outcomeVerbs[e.Outcome],
			e.EndedAt.Format("2006-01-02 15:04:05"),
			formatLength(e.Duration),
		)))
		b.WriteString("\n")
	}

	if m.confirming {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(warningColor).
			Render("Delete ALL recorded countdowns? (y/n)") + "\n")
	} else if m.statusMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(successColor).Render(m.statusMsg) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("Keys: ↑/↓=move, d=clear history") + "\n")
	return b.String()
}
