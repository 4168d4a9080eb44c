package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"stagehand/internal/config"
	"stagehand/internal/journal"
	"stagehand/internal/launcher"
	"stagehand/internal/logging"
	"stagehand/internal/notifications"
	"stagehand/internal/probe"
)

// Child is the handle the supervisor holds over the spawned backend.
// *launcher.Child implements it; tests substitute fakes.
type Child interface {
	PID() int
	Command() string
	Done() <-chan struct{}
	Exited() bool
	ExitState() (launcher.ExitState, bool)
	Terminate(grace time.Duration)
}

type launchFunc func(ctx context.Context, logger *slog.Logger, opts launcher.Options) (Child, error)

type probeFunc func(ctx context.Context, url string, policy probe.Policy, child probe.Process) probe.Result

type inflight struct {
	done chan struct{}
	err  error
}

// Supervisor composes launch, readiness probing, and exit monitoring
// into one lifecycle. At most one backend child exists at any time;
// a launch requested while one is in flight joins the existing
// attempt.
type Supervisor struct {
	cfg       *config.Config
	logger    *slog.Logger
	journal   *journal.Store
	notifier  notifications.Service
	root      string
	sessionID string

	launch    launchFunc
	waitReady probeFunc

	fatal chan string

	mu        sync.Mutex
	state     State
	child     Child
	readiness ReadinessState
	stopping  bool
	flight    *inflight
	changed   chan struct{}
}

// New builds a supervisor. root is the project root the backend runs
// in; store may be nil to disable journaling.
func New(cfg *config.Config, logger *slog.Logger, store *journal.Store, notifier notifications.Service, root string) *Supervisor {
	if logger == nil {
		logger = logging.NewNop()
	}
	sessionID := uuid.NewString()
	logger = logging.WithComponent(logger, "supervisor").
		With(logging.String(logging.FieldSession, sessionID))
	return &Supervisor{
		cfg:       cfg,
		logger:    logger,
		journal:   store,
		notifier:  notifier,
		root:      root,
		sessionID: sessionID,
		launch: func(ctx context.Context, logger *slog.Logger, opts launcher.Options) (Child, error) {
			return launcher.Launch(ctx, logger, opts)
		},
		waitReady: probe.WaitUntilReady,
		fatal:     make(chan string, 1),
		changed:   make(chan struct{}),
	}
}

// SessionID returns this supervisor run's journal session identifier.
func (s *Supervisor) SessionID() string {
	return s.sessionID
}

// Fatal delivers the detail of an unexpected backend exit. The
// process is expected to terminate after receiving it.
func (s *Supervisor) Fatal() <-chan string {
	return s.fatal
}

// Readiness returns a snapshot of the published readiness state.
func (s *Supervisor) Readiness() ReadinessState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readiness
}

// Snapshot returns a point-in-time status view.
func (s *Supervisor) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := Status{
		SessionID: s.sessionID,
		State:     s.state,
		Readiness: s.readiness,
	}
	if s.child != nil {
		status.BackendPID = s.child.PID()
	}
	return status
}

// Start runs the launch pipeline: spawn the backend, probe its health
// endpoint, and publish readiness. Readiness is sticky: once Ready,
// Start returns immediately until a failure or shutdown resets it.
// Concurrent calls join the in-flight attempt instead of spawning a
// second child.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateReady:
		s.mu.Unlock()
		return nil
	case StateShuttingDown:
		s.mu.Unlock()
		return ErrShuttingDown
	case StateFailed:
		reason := s.readiness.Reason
		s.mu.Unlock()
		return fmt.Errorf("previous launch failed: %s", reason)
	case StateLaunching, StateProbingReadiness:
		flight := s.flight
		s.mu.Unlock()
		select {
		case <-flight.done:
			return flight.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	flight := &inflight{done: make(chan struct{})}
	s.flight = flight
	s.setStateLocked(StateLaunching)
	s.mu.Unlock()

	err := s.run(ctx)
	flight.err = err
	close(flight.done)
	return err
}

func (s *Supervisor) run(ctx context.Context) error {
	s.record(journal.EventSessionStarted, "", 0)

	opts := launcher.Options{
		Script:     s.cfg.EntryPointPath(s.root),
		Candidates: launcher.Candidates(s.cfg.Backend.Interpreters),
		WorkDir:    s.root,
	}
	child, err := s.launch(ctx, s.logger, opts)
	if err != nil {
		return s.failStartup(err, journal.EventLaunchFailed)
	}

	s.mu.Lock()
	if s.stopping {
		s.mu.Unlock()
		child.Terminate(s.cfg.ShutdownGrace())
		return ErrShuttingDown
	}
	s.child = child
	s.setStateLocked(StateProbingReadiness)
	s.setReadinessLocked(ReadinessState{Phase: PhaseProbing})
	s.mu.Unlock()

	s.record(journal.EventBackendLaunched, child.Command(), child.PID())
	go s.monitor(child)

	policy := probe.Policy{
		Timeout:        s.cfg.ReadinessTimeout(),
		Interval:       s.cfg.PollInterval(),
		RequestTimeout: s.cfg.RequestTimeout(),
	}
	result := s.waitReady(ctx, s.cfg.HealthURL(), policy, child)

	s.mu.Lock()
	if s.stopping {
		// Shutdown began while the probe was in flight; its result
		// no longer matters.
		s.mu.Unlock()
		return ErrShuttingDown
	}

	switch result {
	case probe.Ready:
		s.setStateLocked(StateReady)
		s.setReadinessLocked(ReadinessState{Phase: PhaseReady})
		s.mu.Unlock()
		s.record(journal.EventBackendReady, "", child.PID())
		s.logger.Info("backend ready",
			logging.String("url", s.cfg.HealthURL()),
			logging.Int(logging.FieldPID, child.PID()))
		return nil
	case probe.ChildExited:
		s.child = nil
		s.mu.Unlock()
		detail := "before readiness"
		if state, exited := child.ExitState(); exited {
			detail = state.String()
		}
		return s.failStartup(fmt.Errorf("%w (%s)", ErrChildExited, detail), journal.EventLaunchFailed)
	case probe.Canceled:
		// The caller is quitting, not the backend failing; tear down
		// quietly like any other shutdown.
		s.mu.Unlock()
		s.Stop()
		return ErrShuttingDown
	default:
		// The backend is alive but never became ready. The launch is
		// terminal, so the child must not outlive it.
		live := s.child
		s.child = nil
		s.mu.Unlock()
		if live != nil {
			live.Terminate(s.cfg.ShutdownGrace())
		}
		return s.failStartup(ErrReadinessTimeout, journal.EventLaunchFailed)
	}
}

func (s *Supervisor) failStartup(err error, eventType journal.EventType) error {
	s.mu.Lock()
	s.setStateLocked(StateFailed)
	s.setReadinessLocked(ReadinessState{Phase: PhaseFailed, Reason: err.Error()})
	s.mu.Unlock()

	s.record(eventType, err.Error(), 0)
	s.logger.Error("backend startup failed", logging.Error(err))
	if s.notifier != nil {
		if notifyErr := s.notifier.NotifyStartupFailed(context.Background(), err); notifyErr != nil {
			s.logger.Warn("startup failure notification failed", logging.Error(notifyErr))
		}
	}
	return err
}

// monitor observes the child until it terminates and classifies the
// exit as expected (our own shutdown) or an unexpected crash.
func (s *Supervisor) monitor(child Child) {
	<-child.Done()
	state, _ := child.ExitState()

	s.mu.Lock()
	if s.stopping {
		s.child = nil
		s.mu.Unlock()
		s.record(journal.EventBackendExited, state.String(), child.PID())
		return
	}
	if s.state != StateReady {
		// Still probing, or the launch pipeline already recorded a
		// failure; the probe loop reports ChildExited itself.
		s.child = nil
		s.mu.Unlock()
		return
	}
	s.child = nil
	s.setStateLocked(StateFailed)
	s.setReadinessLocked(ReadinessState{Phase: PhaseFailed, Reason: "backend exited unexpectedly: " + state.String()})
	s.mu.Unlock()

	s.record(journal.EventBackendCrashed, state.String(), child.PID())
	s.logger.Error("backend exited unexpectedly", logging.String(logging.FieldState, state.String()))
	if s.notifier != nil {
		if err := s.notifier.NotifyBackendCrashed(context.Background(), state.String()); err != nil {
			s.logger.Warn("crash notification failed", logging.Error(err))
		}
	}
	select {
	case s.fatal <- state.String():
	default:
	}
}

// Stop tears the child down and publishes the shutdown state. It is
// idempotent: stopping with no child, or twice in a row, is a no-op.
// Errors while terminating an already-gone child are swallowed.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if s.stopping {
		s.mu.Unlock()
		return
	}
	s.stopping = true
	s.setStateLocked(StateShuttingDown)
	child := s.child
	s.child = nil
	s.setReadinessLocked(ReadinessState{Phase: PhaseNotStarted})
	s.mu.Unlock()

	if child != nil {
		s.logger.Debug("terminating backend",
			logging.Int(logging.FieldPID, child.PID()),
			logging.Duration("grace", s.cfg.ShutdownGrace()))
		child.Terminate(s.cfg.ShutdownGrace())
	}
	s.record(journal.EventShutdown, "", 0)
	s.logger.Info("supervisor stopped")
}

// WaitReady blocks until the backend is ready, the launch fails, or
// the context ends.
func (s *Supervisor) WaitReady(ctx context.Context) error {
	for {
		s.mu.Lock()
		snapshot := s.readiness
		stopping := s.stopping
		changed := s.changed
		s.mu.Unlock()

		if stopping {
			return ErrShuttingDown
		}
		switch snapshot.Phase {
		case PhaseReady:
			return nil
		case PhaseFailed:
			return errors.New(snapshot.Reason)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

func (s *Supervisor) setStateLocked(next State) {
	if s.state == next {
		return
	}
	s.logger.Debug("state transition",
		logging.String("from", s.state.String()),
		logging.String("to", next.String()))
	s.state = next
}

func (s *Supervisor) setReadinessLocked(next ReadinessState) {
	s.readiness = next
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *Supervisor) record(eventType journal.EventType, detail string, pid int) {
	if s.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.journal.Append(ctx, s.sessionID, eventType, detail, pid); err != nil {
		s.logger.Warn("journal append failed", logging.Error(err))
	}
}
