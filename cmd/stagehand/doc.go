// Package main hosts the stagehand CLI entrypoint and command graph.
//
// The Cobra-based command tree launches and supervises the Python
// backend, translates terminal invocations into IPC calls against a
// running instance, renders the lifecycle journal, and scaffolds
// configuration. It centralizes configuration resolution, socket
// discovery, and structured logging setup so subcommands can focus on
// user experience instead of wiring.
package main
