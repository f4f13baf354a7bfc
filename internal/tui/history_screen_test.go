package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/andy/countdown/internal/domain"
)

func TestHistoryScreen_LoadAndClear(t *testing.T) {
	svc, clock, repo := newTestService(domain.ModeDuration)
	if _, err := svc.Start(context.Background(), domain.Fields{Seconds: "5"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(5 * time.Second)
	svc.Tick(context.Background())

	m := newHistoryModel(svc)
	m.Update(m.Init()())
	if len(m.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.entries))
	}
	if !strings.Contains(m.View(), "completed") {
		t.Fatalf("expected completed row in view")
	}

	m.Update(keyPress("d"))
	if !m.IsCapturingInput() {
		t.Fatalf("d should open the confirmation")
	}
	_, cmd := m.Update(keyPress("y"))
	if cmd == nil {
		t.Fatalf("confirming should clear history")
	}
	_, cmd = m.Update(cmd())
	if len(repo.entries) != 0 {
		t.Fatalf("history should be empty, got %d", len(repo.entries))
	}
	m.Update(cmd())
	if len(m.entries) != 0 || !strings.Contains(m.View(), "No countdowns recorded yet") {
		t.Fatalf("expected empty history view")
	}
}

func TestHistoryScreen_CancelClear(t *testing.T) {
	svc, _, repo := newTestService(domain.ModeDuration)
	repo.entries = []*domain.HistoryEntry{{ID: "a", Mode: domain.ModeDuration, Duration: time.Minute, Outcome: domain.OutcomeStopped}}

	m := newHistoryModel(svc)
	m.Update(m.Init()())
	m.Update(keyPress("d"))
	if _, cmd := m.Update(keyPress("n")); cmd != nil {
		t.Fatalf("any key other than y should cancel")
	}
	if len(repo.entries) != 1 {
		t.Fatalf("history should be kept")
	}
}
