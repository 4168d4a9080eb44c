package surface

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stagehand/internal/supervisor"
)

type stubWaiter struct {
	mu        sync.Mutex
	readiness supervisor.ReadinessState
	block     chan struct{}
	waitErr   error
}

func (s *stubWaiter) Readiness() supervisor.ReadinessState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readiness
}

func (s *stubWaiter) WaitReady(ctx context.Context) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.waitErr
}

func (s *stubWaiter) setReady() {
	s.mu.Lock()
	s.readiness = supervisor.ReadinessState{Phase: supervisor.PhaseReady}
	s.mu.Unlock()
}

type countingSurface struct {
	shows atomic.Int32
	err   error
}

func (c *countingSurface) Show(context.Context) error {
	c.shows.Add(1)
	return c.err
}

func TestActivateShowsWhenReady(t *testing.T) {
	waiter := &stubWaiter{}
	waiter.setReady()
	sfc := &countingSurface{}
	gate := NewGate(waiter, sfc, nil, "", nil)

	if err := gate.Activate(context.Background()); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got := sfc.shows.Load(); got != 1 {
		t.Fatalf("expected one show, got %d", got)
	}
}

func TestActivateWaitsForReadiness(t *testing.T) {
	waiter := &stubWaiter{block: make(chan struct{})}
	sfc := &countingSurface{}
	gate := NewGate(waiter, sfc, nil, "", nil)

	done := make(chan error, 1)
	go func() { done <- gate.Activate(context.Background()) }()

	select {
	case err := <-done:
		t.Fatalf("Activate returned before readiness: %v", err)
	case <-time.After(30 * time.Millisecond):
	}
	if sfc.shows.Load() != 0 {
		t.Fatal("surface shown before readiness")
	}

	waiter.setReady()
	close(waiter.block)
	if err := <-done; err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got := sfc.shows.Load(); got != 1 {
		t.Fatalf("expected one show, got %d", got)
	}
}

func TestConcurrentActivationsCollapse(t *testing.T) {
	waiter := &stubWaiter{block: make(chan struct{})}
	sfc := &countingSurface{}
	gate := NewGate(waiter, sfc, nil, "", nil)

	first := make(chan error, 1)
	go func() { first <- gate.Activate(context.Background()) }()

	// Let the first request reach the readiness wait, then pile on.
	time.Sleep(20 * time.Millisecond)
	for range 4 {
		if err := gate.Activate(context.Background()); err != nil {
			t.Fatalf("pending Activate: %v", err)
		}
	}

	waiter.setReady()
	close(waiter.block)
	if err := <-first; err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got := sfc.shows.Load(); got != 1 {
		t.Fatalf("expected one show across concurrent activations, got %d", got)
	}
}

func TestActivatePropagatesWaitFailure(t *testing.T) {
	wantErr := errors.New("backend never became ready")
	waiter := &stubWaiter{waitErr: wantErr}
	sfc := &countingSurface{}
	gate := NewGate(waiter, sfc, nil, "", nil)

	if err := gate.Activate(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected wait failure, got %v", err)
	}
	if sfc.shows.Load() != 0 {
		t.Fatal("surface must not open after a failed wait")
	}

	// A later activation retries rather than staying latched.
	waiter.mu.Lock()
	waiter.waitErr = nil
	waiter.mu.Unlock()
	waiter.setReady()
	if err := gate.Activate(context.Background()); err != nil {
		t.Fatalf("retry Activate: %v", err)
	}
	if got := sfc.shows.Load(); got != 1 {
		t.Fatalf("expected one show after retry, got %d", got)
	}
}

func TestActivateSurfaceError(t *testing.T) {
	waiter := &stubWaiter{}
	waiter.setReady()
	sfc := &countingSurface{err: errors.New("no opener on PATH")}
	gate := NewGate(waiter, sfc, nil, "", nil)

	if err := gate.Activate(context.Background()); err == nil {
		t.Fatal("expected surface error")
	}
}
