package tui

import (
	"fmt"
	"strings"

	"github.com/andy/countdown/internal/app"
	"github.com/andy/countdown/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenCountdown Screen = iota
	ScreenHistory
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenCountdown:
		return "Countdown"
	case ScreenHistory:
		return "History"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// The countdown screen always exists since it owns the tick chain
	countdown *CountdownModel
	history   tea.Model
	settings  tea.Model

	newHistory  func() tea.Model
	newSettings func() tea.Model

	quitMsg   string // shown when quit needs confirming
	quitArmed bool
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenCountdown,
		countdown:     NewCountdownModel(a).(*CountdownModel),
		newHistory:    func() tea.Model { return NewHistoryModel(a) },
		newSettings:   func() tea.Model { return NewSettingsModel(a) },
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.countdown.Init()
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenCountdown:
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenHistory:
		if m.history == nil {
			m.history = m.newHistory()
			return m.history.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenSettings:
		if m.settings == nil {
			m.settings = m.newSettings()
			return m.settings.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (C, H, comma, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	var screen tea.Model
	switch m.currentScreen {
	case ScreenCountdown:
		screen = m.countdown
	case ScreenHistory:
		screen = m.history
	case ScreenSettings:
		screen = m.settings
	}
	if ic, ok := screen.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case countdownTickMsg:
		// Ticks keep flowing while another screen is shown
		_, cmd := m.countdown.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Clear quit warning on any keypress
		m.quitMsg = ""
		armed := m.quitArmed
		m.quitArmed = false

		// ctrl+c always gets through, even while a form is focused
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				switch m.countdown.Snapshot().Phase {
				case domain.PhaseRunning, domain.PhasePaused:
					if !armed {
						m.quitArmed = true
						m.quitMsg = "A countdown is active. Press q again to stop it and quit."
						return m, nil
					}
				}
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Countdown):
				m.currentScreen = ScreenCountdown
				cmd := m.initScreen(ScreenCountdown)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.History):
				m.currentScreen = ScreenHistory
				cmd := m.initScreen(ScreenHistory)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Settings):
				m.currentScreen = ScreenSettings
				cmd := m.initScreen(ScreenSettings)
				return m, cmd
			}
		}

	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenCountdown:
		_, cmd = m.countdown.Update(msg)
	case ScreenHistory:
		if m.history != nil {
			m.history, cmd = m.history.Update(msg)
		}
	case ScreenSettings:
		if m.settings != nil {
			m.settings, cmd = m.settings.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("countdown - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[C]ountdown  [H]istory  [,] Settings  [Q]uit")

	// Current screen content
	var content string
	switch m.currentScreen {
	case ScreenCountdown:
		content = m.countdown.View()
	case ScreenHistory:
		if m.history != nil {
			content = m.history.View()
		} else {
			content = "Loading..."
		}
	case ScreenSettings:
		if m.settings != nil {
			content = m.settings.View()
		} else {
			content = "Loading..."
		}
	}

	// Quit warning
	errorDisplay := ""
	if m.quitMsg != "" {
		errorDisplay = lipgloss.NewStyle().
			Foreground(warningColor).
			Render(fmt.Sprintf("\n%s", m.quitMsg))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
