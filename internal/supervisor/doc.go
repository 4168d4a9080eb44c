// Package supervisor orchestrates the backend lifecycle: launch,
// readiness probing, exit monitoring, and ordered shutdown. The
// Supervisor is the sole writer of the child handle and the shared
// readiness state; all other components receive snapshots.
package supervisor
