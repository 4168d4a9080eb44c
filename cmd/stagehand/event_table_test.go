package main

import (
	"strings"
	"testing"
	"time"

	"stagehand/internal/journal"
)

func TestRenderEventTable(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)
	events := []journal.Event{
		{SessionID: "0123456789abcdef", Type: journal.EventBackendLaunched, Detail: "python3", PID: 4242, CreatedAt: now},
		{SessionID: "0123456789abcdef", Type: journal.EventShutdown, CreatedAt: now},
	}

	out := renderEventTable(events)
	requireContains(t, out, "backend_launched")
	requireContains(t, out, "python3")
	requireContains(t, out, "4242")
	requireContains(t, out, "01234567")
	if strings.Contains(out, "0123456789abcdef") {
		t.Fatal("session ids should be truncated")
	}
	// Zero PID renders blank, not "0".
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "shutdown") && strings.Contains(line, " 0 ") {
			t.Fatalf("zero pid should render blank: %q", line)
		}
	}
}

func TestShortSession(t *testing.T) {
	if got := shortSession("abc"); got != "abc" {
		t.Fatalf("short ids pass through, got %q", got)
	}
	if got := shortSession("0123456789"); got != "01234567" {
		t.Fatalf("long ids truncate to 8, got %q", got)
	}
}
