package surface

import (
	"context"
	"log/slog"
	"sync"

	"stagehand/internal/journal"
	"stagehand/internal/logging"
	"stagehand/internal/supervisor"
)

// ReadyWaiter is the slice of the supervisor the gate depends on.
type ReadyWaiter interface {
	Readiness() supervisor.ReadinessState
	WaitReady(ctx context.Context) error
}

// Gate serializes activation requests against backend readiness. The
// first request triggers the readiness wait; requests arriving while
// one is pending join it instead of producing extra windows.
type Gate struct {
	waiter    ReadyWaiter
	surface   Surface
	journal   *journal.Store
	sessionID string
	logger    *slog.Logger

	mu      sync.Mutex
	pending bool
}

// NewGate wires a gate over waiter and surface. The journal store may
// be nil.
func NewGate(waiter ReadyWaiter, surface Surface, store *journal.Store, sessionID string, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gate{
		waiter:    waiter,
		surface:   surface,
		journal:   store,
		sessionID: sessionID,
		logger:    logger,
	}
}

// Activate shows the surface once the backend is ready. When readiness
// is already established the surface opens immediately; otherwise the
// call blocks on the readiness wait. Duplicate requests made while one
// activation is pending return nil without opening a second surface.
func (g *Gate) Activate(ctx context.Context) error {
	g.mu.Lock()
	if g.pending {
		g.mu.Unlock()
		g.logger.Debug("activation already pending")
		return nil
	}
	g.pending = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.pending = false
		g.mu.Unlock()
	}()

	if g.waiter.Readiness().Phase != supervisor.PhaseReady {
		if err := g.waiter.WaitReady(ctx); err != nil {
			return err
		}
	}

	if err := g.surface.Show(ctx); err != nil {
		return err
	}
	if g.journal != nil {
		if err := g.journal.Append(ctx, g.sessionID, journal.EventSurfaceOpened, "", 0); err != nil {
			g.logger.Warn("journal append failed", logging.Error(err))
		}
	}
	return nil
}
