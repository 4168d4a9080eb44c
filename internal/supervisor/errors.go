package supervisor

import "errors"

var (
	// ErrReadinessTimeout indicates the backend never answered its
	// health endpoint within the configured deadline.
	ErrReadinessTimeout = errors.New("backend readiness timed out")

	// ErrChildExited indicates the backend terminated while its
	// readiness was still being probed.
	ErrChildExited = errors.New("backend exited during startup")

	// ErrShuttingDown indicates the launch was abandoned because
	// shutdown began while it was in flight.
	ErrShuttingDown = errors.New("supervisor is shutting down")
)
