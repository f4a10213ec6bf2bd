// Package logging assembles structured slog loggers and formatting helpers used
// across immich-stack.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so workflow code automatically
// tags log lines with the run correlation ID, stage, and album. A no-op logger
// is available for tests and wiring code that cannot fail.
//
// Logs go to stderr so stdout stays reserved for the pair report.
package logging
