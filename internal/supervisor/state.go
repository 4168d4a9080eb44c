package supervisor

// State is the supervisor's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLaunching
	StateProbingReadiness
	StateReady
	StateFailed
	StateShuttingDown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLaunching:
		return "launching"
	case StateProbingReadiness:
		return "probing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateShuttingDown:
		return "shutting down"
	default:
		return "unknown"
	}
}

// Phase is the published readiness phase.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseProbing
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseProbing:
		return "probing"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReadinessState is the snapshot consumers read. Reason is set only
// in the failed phase. A crash resets the phase; readers must not
// assume monotonic progress.
type ReadinessState struct {
	Phase  Phase
	Reason string
}

// Status is a point-in-time view of the supervisor for status
// reporting.
type Status struct {
	SessionID  string
	State      State
	Readiness  ReadinessState
	BackendPID int
}
