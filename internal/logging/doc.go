// Package logging configures slog-based structured logging for
// stagehand with console and JSON output formats.
package logging
