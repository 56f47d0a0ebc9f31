// Package logging assembles the structured slog loggers used across skycast.
//
// It centralizes level and output plumbing for the console and JSON handlers,
// defines the standardized field keys shared by the server and CLI, and
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
