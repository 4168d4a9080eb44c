// Package ipc exposes supervisor control over a Unix domain socket.
// A second stagehand invocation that loses the instance lock uses it
// to forward its activation request to the running instance; the stop
// and status commands use the same channel.
package ipc
