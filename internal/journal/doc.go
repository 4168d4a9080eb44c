// Package journal persists supervisor lifecycle events in SQLite so
// status and history commands can inspect past sessions.
package journal
