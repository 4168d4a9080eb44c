package journal

import "time"

// EventType identifies a lifecycle event.
type EventType string

const (
	EventSessionStarted  EventType = "session_started"
	EventBackendLaunched EventType = "backend_launched"
	EventBackendReady    EventType = "backend_ready"
	EventLaunchFailed    EventType = "launch_failed"
	EventBackendExited   EventType = "backend_exited"
	EventBackendCrashed  EventType = "backend_crashed"
	EventSurfaceOpened   EventType = "surface_opened"
	EventShutdown        EventType = "shutdown"
)

// Event is one journal entry. PID is zero for events with no live
// child.
type Event struct {
	ID        int64
	SessionID string
	Type      EventType
	Detail    string
	PID       int
	CreatedAt time.Time
}
