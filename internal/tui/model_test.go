package tui

import (
	"testing"
	"time"

	"github.com/andy/countdown/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(fields domain.Fields) (Model, *fakeClock) {
	svc, clock, _ := newTestService(domain.ModeDuration)
	return Model{
		currentScreen: ScreenCountdown,
		countdown:     newCountdownModel(svc, nil, fields),
		newHistory:    func() tea.Model { return newHistoryModel(svc) },
	}, clock
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_QuitWhenIdle(t *testing.T) {
	m, _ := newTestModel(domain.Fields{})

	_, cmd := m.Update(keyPress("q"))
	if !isQuit(cmd) {
		t.Fatalf("q should quit when nothing is running")
	}
}

func TestModel_QuitNeedsConfirmWhileActive(t *testing.T) {
	m, _ := newTestModel(domain.Fields{Minutes: "1"})
	m.countdown.Update(keyPress("s"))

	next, cmd := m.Update(keyPress("q"))
	if isQuit(cmd) {
		t.Fatalf("first q should only warn while a countdown is active")
	}
	m = next.(Model)
	if m.quitMsg == "" {
		t.Fatalf("expected a quit warning")
	}

	_, cmd = m.Update(keyPress("q"))
	if !isQuit(cmd) {
		t.Fatalf("second q should quit")
	}
}

func TestModel_TicksReachCountdownOnOtherScreens(t *testing.T) {
	m, clock := newTestModel(domain.Fields{Seconds: "10"})
	m.countdown.Update(keyPress("s"))

	next, _ := m.Update(keyPress("h"))
	m = next.(Model)
	if m.currentScreen != ScreenHistory {
		t.Fatalf("expected history screen, got %s", m.currentScreen)
	}

	clock.Advance(4 * time.Second)
	_, cmd := m.Update(countdownTickMsg{seq: m.countdown.tickSeq})
	if cmd == nil {
		t.Fatalf("tick chain should continue while history is shown")
	}
	if got := m.countdown.Snapshot().Breakdown.Total; got != 6 {
		t.Fatalf("expected 6s left, got %d", got)
	}
}

func TestModel_NavigationSuppressedWhileEditing(t *testing.T) {
	m, _ := newTestModel(domain.Fields{})

	next, _ := m.Update(keyPress("tab"))
	m = next.(Model)
	next, _ = m.Update(keyPress("h"))
	m = next.(Model)

	if m.currentScreen != ScreenCountdown {
		t.Fatalf("h should be typed into the form, not switch screens")
	}
}
