package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/countdown/internal/app"
	"github.com/andy/countdown/internal/config"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldMode = iota
	settingsFieldOffset
	settingsFieldTime
	settingsFieldHours
	settingsFieldMinutes
	settingsFieldSeconds
	settingsFieldSound
	settingsFieldCount
)

var settingsLabels = [settingsFieldCount]string{
	settingsFieldMode:    "Default Mode:",
	settingsFieldOffset:  "Target Date (days ahead):",
	settingsFieldTime:    "Target Time:",
	settingsFieldHours:   "Duration Hours:",
	settingsFieldMinutes: "Duration Minutes:",
	settingsFieldSeconds: "Duration Seconds:",
	settingsFieldSound:   "Completion Chime:",
}

type settingsSavedMsg struct {
	err error
}

// SettingsModel edits the form defaults and the completion chime
type SettingsModel struct {
	cfg  *config.Config
	save func() error

	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return newSettingsModel(a.Config, a.SaveConfig)
}

func newSettingsModel(cfg *config.Config, save func() error) *SettingsModel {
	return &SettingsModel{
		cfg:  cfg,
		save: save,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	d := m.cfg.Defaults

	values := [settingsFieldCount]string{
		settingsFieldMode:    d.Mode,
		settingsFieldOffset:  strconv.Itoa(d.DateOffsetDays),
		settingsFieldTime:    d.Time,
		settingsFieldHours:   strconv.Itoa(d.Hours),
		settingsFieldMinutes: strconv.Itoa(d.Minutes),
		settingsFieldSeconds: strconv.Itoa(d.Seconds),
		settingsFieldSound:   yesNo(m.cfg.Alert.Sound),
	}
	placeholders := [settingsFieldCount]string{
		settingsFieldMode:  "target or duration",
		settingsFieldTime:  "HH:MM",
		settingsFieldSound: "yes or no",
	}

	for i := range m.fields {
		m.fields[i] = textinput.New()
		m.fields[i].Placeholder = placeholders[i]
		m.fields[i].CharLimit = 10
		m.fields[i].Width = 20
		m.fields[i].SetValue(values[i])
	}

	m.fieldFocus = settingsFieldMode
	m.fields[settingsFieldMode].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		next := *m.cfg

		next.Defaults.Mode = strings.TrimSpace(m.fields[settingsFieldMode].Value())
		next.Defaults.Time = strings.TrimSpace(m.fields[settingsFieldTime].Value())

		ints := []struct {
			field int
			dst   *int
		}{
			{settingsFieldOffset, &next.Defaults.DateOffsetDays},
			{settingsFieldHours, &next.Defaults.Hours},
			{settingsFieldMinutes, &next.Defaults.Minutes},
			{settingsFieldSeconds, &next.Defaults.Seconds},
		}
		for _, f := range ints {
			n, err := strconv.Atoi(strings.TrimSpace(m.fields[f.field].Value()))
			if err != nil || n < 0 {
				return settingsSavedMsg{err: fmt.Errorf("%s must be a whole number", strings.TrimSuffix(settingsLabels[f.field], ":"))}
			}
			*f.dst = n
		}

		switch strings.ToLower(strings.TrimSpace(m.fields[settingsFieldSound].Value())) {
		case "yes", "y", "on", "true":
			next.Alert.Sound = true
		case "no", "n", "off", "false":
			next.Alert.Sound = false
		default:
			return settingsSavedMsg{err: fmt.Errorf("completion chime must be yes or no")}
		}

		if err := next.Validate(); err != nil {
			return settingsSavedMsg{err: err}
		}

		*m.cfg = next
		if err := m.save(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch {
		case msg.String() == "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved. New defaults apply from the next launch."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	d := m.cfg.Defaults

	labelStyle := lipgloss.NewStyle().Bold(true).Width(28)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	s += subtitleStyle.Render("  Countdown Defaults") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render(settingsLabels[settingsFieldMode]), valueStyle.Render(d.Mode))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Target:"), valueStyle.Render(fmt.Sprintf("today + %d days at %s", d.DateOffsetDays, d.Time)))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Duration:"), valueStyle.Render(fmt.Sprintf("%dh %dm %ds", d.Hours, d.Minutes, d.Seconds)))

	s += "\n" + subtitleStyle.Render("  Alert") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render(settingsLabels[settingsFieldSound]), valueStyle.Render(yesNo(m.cfg.Alert.Sound)))

	s += "\n" + helpStyle.Render("  enter: edit settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	for i, label := range settingsLabels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
