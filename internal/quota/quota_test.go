package quota

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestTracker(t *testing.T, limits map[string]int, defaultLimit int) *Tracker {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quotas.json")
	return New(path, limits, defaultLimit, zap.NewNop())
}

func TestCheckFreshSourceAllowed(t *testing.T) {
	tracker := newTestTracker(t, map[string]int{"LinkedIn Jobs": 20}, 100)

	allowed, remaining := tracker.Check("LinkedIn Jobs")
	if !allowed || remaining != 20 {
		t.Fatalf("expected allowed with 20 remaining, got allowed=%v remaining=%d", allowed, remaining)
	}

	allowed, remaining = tracker.Check("Unknown Board")
	if !allowed || remaining != 100 {
		t.Fatalf("expected default limit 100, got allowed=%v remaining=%d", allowed, remaining)
	}
}

func TestCheckDisallowsAtLimit(t *testing.T) {
	tracker := newTestTracker(t, map[string]int{"LinkedIn Jobs": 20}, 100)

	for range 20 {
		if err := tracker.Increment("LinkedIn Jobs"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	allowed, remaining := tracker.Check("LinkedIn Jobs")
	if allowed || remaining != 0 {
		t.Fatalf("expected exhausted quota, got allowed=%v remaining=%d", allowed, remaining)
	}
}

func TestDayRolloverResetsWithoutExplicitReset(t *testing.T) {
	tracker := newTestTracker(t, map[string]int{"LinkedIn Jobs": 20}, 100)

	current := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return current }

	for range 20 {
		if err := tracker.Increment("LinkedIn Jobs"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	if allowed, _ := tracker.Check("LinkedIn Jobs"); allowed {
		t.Fatal("expected quota to be exhausted before rollover")
	}

	current = current.Add(2 * time.Hour) // past midnight UTC

	allowed, remaining := tracker.Check("LinkedIn Jobs")
	if !allowed || remaining != 20 {
		t.Fatalf("expected reset after rollover, got allowed=%v remaining=%d", allowed, remaining)
	}
}

func TestCountersSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotas.json")

	first := New(path, nil, 10, zap.NewNop())
	for range 3 {
		if err := first.Increment("Remote Feed"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	second := New(path, nil, 10, zap.NewNop())
	_, remaining := second.Check("Remote Feed")
	if remaining != 7 {
		t.Fatalf("expected 7 remaining after restart, got %d", remaining)
	}
}

func TestStatsReportsTodayOnly(t *testing.T) {
	tracker := newTestTracker(t, nil, 10)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return current }

	if err := tracker.Increment("Remote Feed"); err != nil {
		t.Fatalf("increment: %v", err)
	}

	current = current.AddDate(0, 0, 1)

	stats := tracker.Stats()
	if rec := stats["Remote Feed"]; rec.Count != 0 {
		t.Fatalf("expected stale record to report zero usage, got %d", rec.Count)
	}
}
