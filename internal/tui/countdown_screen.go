package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andy/countdown/internal/app"
	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// countdown form field indices
const (
	fieldDate = iota
	fieldTime
	fieldHours
	fieldMinutes
	fieldSeconds
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldDate:    "Date",
	fieldTime:    "Time",
	fieldHours:   "Hours",
	fieldMinutes: "Minutes",
	fieldSeconds: "Seconds",
}

// tickCountdown schedules the next tick of chain seq
func tickCountdown(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{seq: seq}
	})
}

// CountdownModel is the main screen: the form, the remaining time and the controls
type CountdownModel struct {
	svc         service.CountdownService
	presets     map[string]config.Preset
	presetNames []string

	fields []textinput.Model
	focus  int // index into fields, -1 when no field is being edited

	snap    domain.Snapshot
	tickSeq int

	err    string
	notice string
}

// NewCountdownModel creates the countdown screen for the app's service
func NewCountdownModel(a *app.App) tea.Model {
	return newCountdownModel(a.CountdownService, a.Config.Presets, a.DefaultFields())
}

func newCountdownModel(svc service.CountdownService, presets map[string]config.Preset, defaults domain.Fields) *CountdownModel {
	m := &CountdownModel{
		svc:     svc,
		presets: presets,
		focus:   -1,
		snap:    svc.Snapshot(),
	}
	for name := range presets {
		m.presetNames = append(m.presetNames, name)
	}
	sort.Strings(m.presetNames)
	m.initForm(defaults)
	return m
}

func (m *CountdownModel) initForm(defaults domain.Fields) {
	m.fields = make([]textinput.Model, fieldCount)

	m.fields[fieldDate] = textinput.New()
	m.fields[fieldDate].Placeholder = domain.DateLayout
	m.fields[fieldDate].CharLimit = 10
	m.fields[fieldDate].Width = 12

	m.fields[fieldTime] = textinput.New()
	m.fields[fieldTime].Placeholder = domain.TimeLayout
	m.fields[fieldTime].CharLimit = 5
	m.fields[fieldTime].Width = 6

	for _, i := range []int{fieldHours, fieldMinutes, fieldSeconds} {
		m.fields[i] = textinput.New()
		m.fields[i].Placeholder = "0"
		m.fields[i].CharLimit = 6
		m.fields[i].Width = 7
	}

	m.setFields(defaults)
}

func (m *CountdownModel) setFields(f domain.Fields) {
	m.fields[fieldDate].SetValue(f.Date)
	m.fields[fieldTime].SetValue(f.Time)
	m.fields[fieldHours].SetValue(f.Hours)
	m.fields[fieldMinutes].SetValue(f.Minutes)
	m.fields[fieldSeconds].SetValue(f.Seconds)
}

// Fields returns the raw form values
func (m *CountdownModel) Fields() domain.Fields {
	return domain.Fields{
		Date:    m.fields[fieldDate].Value(),
		Time:    m.fields[fieldTime].Value(),
		Hours:   m.fields[fieldHours].Value(),
		Minutes: m.fields[fieldMinutes].Value(),
		Seconds: m.fields[fieldSeconds].Value(),
	}
}

// visibleFields lists the inputs the current mode uses
func (m *CountdownModel) visibleFields() []int {
	if m.svc.Mode() == domain.ModeTarget {
		return []int{fieldDate, fieldTime}
	}
	return []int{fieldHours, fieldMinutes, fieldSeconds}
}

// IsCapturingInput returns true while a form field is being edited
func (m *CountdownModel) IsCapturingInput() bool {
	return m.focus >= 0
}

// Snapshot returns the state last shown by the screen
func (m *CountdownModel) Snapshot() domain.Snapshot {
	return m.snap
}

func (m *CountdownModel) Init() tea.Cmd {
	if m.snap.Phase == domain.PhaseRunning {
		m.tickSeq++
		return tickCountdown(m.tickSeq)
	}
	return nil
}

func (m *CountdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.snap = m.svc.Snapshot()
		return m, nil

	case countdownTickMsg:
		// A pause, stop or reset since this tick was scheduled ends its chain
		if msg.seq != m.tickSeq {
			return m, nil
		}
		snap, _ := m.svc.Tick(context.Background())
		m.snap = snap
		if snap.Phase == domain.PhaseRunning {
			return m, tickCountdown(m.tickSeq)
		}
		return m, nil

	case tea.KeyMsg:
		if m.focus >= 0 {
			return m.updateForm(msg)
		}
		return m.updateControls(msg)
	}

	return m, nil
}

func (m *CountdownModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.blur()
		return m, m.start()

	case key.Matches(msg, DefaultKeyMap.Back):
		m.blur()
		return m, nil

	case key.Matches(msg, DefaultKeyMap.NextField):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, DefaultKeyMap.PrevField):
		m.cycleFocus(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m *CountdownModel) updateControls(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	controls := ControlsFor(m.snap.Phase)

	m.err = ""
	m.notice = ""

	switch {
	case key.Matches(msg, DefaultKeyMap.Start) && controls.StartVisible:
		return m, m.start()

	case key.Matches(msg, DefaultKeyMap.Pause) && controls.PauseVisible:
		m.snap, _ = m.svc.Pause(ctx)
		m.tickSeq++
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Resume) && controls.ResumeVisible:
		snap, ok := m.svc.Resume(ctx)
		m.snap = snap
		if ok && snap.Phase == domain.PhaseRunning {
			m.tickSeq++
			return m, tickCountdown(m.tickSeq)
		}
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Stop) && controls.StopEnabled:
		m.snap = m.svc.Stop(ctx)
		m.tickSeq++
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Reset) && controls.ResetEnabled:
		m.snap = m.svc.Reset(ctx)
		m.tickSeq++
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Mode) && controls.ModeSwitchEnabled:
		next := domain.ModeDuration
		if m.svc.Mode() == domain.ModeDuration {
			next = domain.ModeTarget
		}
		if m.svc.SetMode(ctx, next) {
			m.notice = "Countdown cancelled by mode change"
		}
		m.snap = m.svc.Snapshot()
		m.tickSeq++
		return m, nil

	case key.Matches(msg, DefaultKeyMap.NextField) && controls.InputsEnabled:
		m.focus = -1
		m.cycleFocus(1)
		return m, textinput.Blink

	case controls.InputsEnabled && len(msg.String()) == 1 && msg.String() >= "1" && msg.String() <= "9":
		m.loadPreset(int(msg.String()[0] - '1'))
		return m, nil
	}

	return m, nil
}

// start resolves the form and starts a new tick chain
func (m *CountdownModel) start() tea.Cmd {
	if !ControlsFor(m.snap.Phase).StartVisible {
		return nil
	}

	snap, err := m.svc.Start(context.Background(), m.Fields())
	m.snap = snap
	if err != nil {
		m.err = ValidationMessage(err)
		return nil
	}

	m.err = ""
	m.tickSeq++
	if snap.Phase != domain.PhaseRunning {
		return nil
	}
	return tickCountdown(m.tickSeq)
}

func (m *CountdownModel) loadPreset(idx int) {
	if idx < 0 || idx >= len(m.presetNames) {
		return
	}
	name := m.presetNames[idx]
	p := m.presets[name]

	if p.Mode() != m.svc.Mode() {
		m.svc.SetMode(context.Background(), p.Mode())
		m.snap = m.svc.Snapshot()
	}
	m.setFields(p.Fields())
	m.notice = fmt.Sprintf("Loaded preset %s", name)
}

func (m *CountdownModel) cycleFocus(dir int) {
	visible := m.visibleFields()
	pos := -1
	for i, f := range visible {
		if f == m.focus {
			pos = i
		}
	}

	switch {
	case pos < 0 && dir < 0:
		pos = len(visible) - 1
	case pos < 0:
		pos = 0
	default:
		pos = (pos + dir + len(visible)) % len(visible)
	}

	m.blur()
	m.focus = visible[pos]
	m.fields[m.focus].Focus()
}

func (m *CountdownModel) blur() {
	if m.focus >= 0 {
		m.fields[m.focus].Blur()
	}
	m.focus = -1
}

// View renders the countdown screen
func (m *CountdownModel) View() string {
	var b strings.Builder
	controls := ControlsFor(m.snap.Phase)

	modeName := "Target date"
	if m.svc.Mode() == domain.ModeDuration {
		modeName = "Duration"
	}
	b.WriteString(titleStyle.Render("Countdown"))
	b.WriteString(subtitleStyle.Render("  " + modeName))
	b.WriteString("\n\n")

	// Form
	for _, f := range m.visibleFields() {
		label := fmt.Sprintf("%-8s", fieldLabels[f]+":")
		if controls.InputsEnabled {
			b.WriteString(label + " " + m.fields[f].View() + "\n")
		} else {
			b.WriteString(disabledStyle.Render(label+" "+m.fields[f].Value()) + "\n")
		}
	}
	b.WriteString("\n")

	// Remaining time
	b.WriteString(m.renderBreakdown())
	b.WriteString("\n")

	if !m.snap.Target.IsZero() {
		b.WriteString(subtitleStyle.Render("Ends " + m.snap.Target.Format("Mon 2006-01-02 15:04:05")))
		b.WriteString("\n")
	}

	// Status line
	status := StatusMessage(m.snap.Status)
	if m.snap.Phase == domain.PhaseCompleted {
		b.WriteString(completeStyle.Render(status))
	} else {
		b.WriteString(status)
	}
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(errorColor).Render(m.err) + "\n")
	}
	if m.notice != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(successColor).Render(m.notice) + "\n")
	}

	// Presets
	if controls.InputsEnabled && len(m.presetNames) > 0 {
		b.WriteString("\nPresets:\n")
		for i, name := range m.presetNames {
			if i >= 9 {
				break
			}
			b.WriteString(fmt.Sprintf("[%d] %s (%s)\n", i+1, truncateStr(name, 20), m.presets[name]))
		}
	}

	b.WriteString("\n" + helpStyle.Render(m.helpLine(controls)) + "\n")
	return b.String()
}

func (m *CountdownModel) renderBreakdown() string {
	bd := m.snap.Breakdown
	style := digitStyle(m.snap.Urgency)

	unit := func(value string, label string) string {
		return lipgloss.JoinVertical(lipgloss.Center,
			style.Render(value),
			unitLabelStyle.Render(label),
		)
	}

	return boxStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		unit(fmt.Sprintf("%02d", bd.Days), "days"), "   ",
		unit(fmt.Sprintf("%02d", bd.Hours), "hours"), "   ",
		unit(fmt.Sprintf("%02d", bd.Minutes), "minutes"), "   ",
		unit(fmt.Sprintf("%02d", bd.Seconds), "seconds"),
	))
}

func (m *CountdownModel) helpLine(controls Controls) string {
	if m.focus >= 0 {
		return "Keys: enter=start, tab=next field, esc=done editing"
	}

	var keys []string
	if controls.StartVisible {
		keys = append(keys, "s=start")
	}
	if controls.PauseVisible {
		keys = append(keys, "p=pause")
	}
	if controls.ResumeVisible {
		keys = append(keys, "r=resume")
	}
	if controls.StopEnabled {
		keys = append(keys, "x=stop")
	}
	if controls.ResetEnabled {
		keys = append(keys, "R=reset")
	}
	if controls.InputsEnabled {
		keys = append(keys, "tab=edit")
		if len(m.presetNames) > 0 {
			keys = append(keys, "1-9=preset")
		}
	}
	if controls.ModeSwitchEnabled {
		keys = append(keys, "m=switch mode")
	}
	return "Keys: " + strings.Join(keys, ", ")
}
