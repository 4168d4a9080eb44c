package ipc

// ActivateRequest asks the running instance to show its surface.
type ActivateRequest struct{}

// ActivateResponse reports whether the surface was shown.
type ActivateResponse struct {
	Shown   bool   `json:"shown"`
	Message string `json:"message"`
}

// StatusRequest fetches supervisor status.
type StatusRequest struct{}

// StatusResponse is the supervisor's state as seen over IPC.
type StatusResponse struct {
	SessionID  string `json:"session_id"`
	State      string `json:"state"`
	Readiness  string `json:"readiness"`
	Reason     string `json:"reason,omitempty"`
	BackendPID int    `json:"backend_pid,omitempty"`
	BackendURL string `json:"backend_url"`
	PID        int    `json:"pid"`
}

// ShutdownRequest asks the running instance to stop the backend and
// exit.
type ShutdownRequest struct{}

// ShutdownResponse acknowledges a shutdown request.
type ShutdownResponse struct {
	Stopping bool `json:"stopping"`
}
