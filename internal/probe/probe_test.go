package probe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"stagehand/internal/probe"
)

type stubChild struct {
	exited atomic.Bool
}

func (s *stubChild) Exited() bool { return s.exited.Load() }

func fastPolicy() probe.Policy {
	return probe.Policy{
		Timeout:        500 * time.Millisecond,
		Interval:       20 * time.Millisecond,
		RequestTimeout: 10 * time.Millisecond,
	}
}

func TestWaitUntilReadySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := probe.WaitUntilReady(context.Background(), srv.URL, fastPolicy(), &stubChild{})
	if result != probe.Ready {
		t.Fatalf("expected Ready, got %v", result)
	}
}

func TestWaitUntilReadyTreatsRedirectAsReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}))
	defer srv.Close()

	result := probe.WaitUntilReady(context.Background(), srv.URL, fastPolicy(), &stubChild{})
	if result != probe.Ready {
		t.Fatalf("expected Ready for 302, got %v", result)
	}
}

func TestWaitUntilReadyTimesOutAtDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	policy := fastPolicy()
	start := time.Now()
	result := probe.WaitUntilReady(context.Background(), srv.URL, policy, &stubChild{})
	elapsed := time.Since(start)

	if result != probe.TimedOut {
		t.Fatalf("expected TimedOut, got %v", result)
	}
	if elapsed < policy.Timeout-policy.Interval {
		t.Fatalf("returned before the deadline: %v", elapsed)
	}
	if elapsed > policy.Timeout+5*policy.Interval {
		t.Fatalf("overshot the deadline by too much: %v", elapsed)
	}
}

func TestWaitUntilReadyDetectsChildExit(t *testing.T) {
	child := &stubChild{}
	child.exited.Store(true)

	policy := fastPolicy()
	policy.Timeout = 10 * time.Second
	start := time.Now()
	// Connection refused: nothing listens on this port.
	result := probe.WaitUntilReady(context.Background(), "http://127.0.0.1:1/api/status", policy, child)

	if result != probe.ChildExited {
		t.Fatalf("expected ChildExited, got %v", result)
	}
	if elapsed := time.Since(start); elapsed > policy.Interval+time.Second {
		t.Fatalf("child exit not detected promptly: %v", elapsed)
	}
}

func TestWaitUntilReadyStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := fastPolicy()
	policy.Timeout = 10 * time.Second
	result := probe.WaitUntilReady(ctx, "http://127.0.0.1:1/api/status", policy, &stubChild{})
	if result != probe.Canceled {
		t.Fatalf("expected Canceled on cancellation, got %v", result)
	}
}

func TestResultString(t *testing.T) {
	if probe.Ready.String() != "ready" || probe.ChildExited.String() != "child exited" {
		t.Fatal("unexpected result strings")
	}
	if probe.Canceled.String() != "canceled" {
		t.Fatal("unexpected canceled string")
	}
}
