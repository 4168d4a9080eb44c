// Package launcher spawns the backend process from an ordered
// interpreter candidate list and exposes a handle over the running
// child.
package launcher
