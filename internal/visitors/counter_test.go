package visitors

import (
	"context"
	"strings"
	"testing"
)

func TestTrackerRecordVisitIncrementsCount(t *testing.T) {
	tracker := NewTracker(NewMemoryCounter(), false)
	ctx := context.Background()

	n1, err := tracker.RecordVisit(ctx, "10.0.0.1", "curl/8.0")
	if err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	n2, err := tracker.RecordVisit(ctx, "10.0.0.2", "curl/8.0")
	if err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	if n1 != 1 || n2 != 2 {
		t.Fatalf("sequence = %d, %d, want 1, 2", n1, n2)
	}

	count, err := tracker.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Count = %d, want 2", count)
	}
}

func TestTrackerRecentVisitsMostRecentFirst(t *testing.T) {
	tracker := NewTracker(NewMemoryCounter(), false)
	ctx := context.Background()

	tracker.RecordVisit(ctx, "1.1.1.1", "agent-a")
	tracker.RecordVisit(ctx, "2.2.2.2", "agent-b")

	recent := tracker.RecentVisits()
	if len(recent) != 2 {
		t.Fatalf("len(recent) = %d, want 2", len(recent))
	}
	if recent[0].ClientIP != "2.2.2.2" {
		t.Fatalf("recent[0].ClientIP = %q, want 2.2.2.2", recent[0].ClientIP)
	}
}

func TestTrackerRecentVisitsCappedAtFifty(t *testing.T) {
	tracker := NewTracker(NewMemoryCounter(), false)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		tracker.RecordVisit(ctx, "1.1.1.1", "agent")
	}

	if len(tracker.RecentVisits()) != 50 {
		t.Fatalf("len(recent) = %d, want 50", len(tracker.RecentVisits()))
	}
}

func TestTrackerTruncatesLongUserAgent(t *testing.T) {
	tracker := NewTracker(NewMemoryCounter(), false)
	ctx := context.Background()

	longUA := strings.Repeat("a", 200)
	tracker.RecordVisit(ctx, "1.1.1.1", longUA)

	recent := tracker.RecentVisits()
	if len(recent[0].UserAgent) != 100 {
		t.Fatalf("len(UserAgent) = %d, want 100", len(recent[0].UserAgent))
	}
}

func TestMemoryCounterLTrimKeepsWindow(t *testing.T) {
	m := NewMemoryCounter()
	ctx := context.Background()

	for _, v := range []string{"a", "b", "c", "d"} {
		m.LPush(ctx, "k", v)
	}
	m.LTrim(ctx, "k", 0, 1)

	out, err := m.LRange(ctx, "k", 0, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	if len(out) != 2 || out[0] != "d" || out[1] != "c" {
		t.Fatalf("out = %+v, want [d c]", out)
	}
}

func TestMemoryCounterPingAlwaysTrue(t *testing.T) {
	m := NewMemoryCounter()
	if !m.Ping(context.Background()) {
		t.Fatal("Ping = false, want true")
	}
}
