// Package logging assembles structured slog loggers and formatting helpers
// used across fluentwhisper.
//
// It owns the console and JSON handlers, level parsing and output routing,
// and exposes attribute helpers plus a no-op logger for tests and library
// callers that do not want output. Logs default to stderr so command output
// on stdout stays machine-readable.
package logging
