package main

import (
	"context"
	"errors"
	"os"

	"stagehand/internal/config"
	"stagehand/internal/ipc"
	"stagehand/internal/supervisor"
	"stagehand/internal/surface"
)

// controller adapts the running supervisor and surface gate to the
// IPC control interface.
type controller struct {
	cfg      *config.Config
	sup      *supervisor.Supervisor
	gate     *surface.Gate
	shutdown context.CancelFunc
}

func (c *controller) Activate(ctx context.Context) error {
	if c.gate == nil {
		return errors.New("surface disabled")
	}
	return c.gate.Activate(ctx)
}

func (c *controller) Status() ipc.StatusResponse {
	status := c.sup.Snapshot()
	return ipc.StatusResponse{
		SessionID:  status.SessionID,
		State:      status.State.String(),
		Readiness:  status.Readiness.Phase.String(),
		Reason:     status.Readiness.Reason,
		BackendPID: status.BackendPID,
		BackendURL: c.cfg.Backend.URL,
		PID:        os.Getpid(),
	}
}

func (c *controller) Shutdown() {
	c.shutdown()
}
