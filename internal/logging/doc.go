// Package logging assembles the structured slog loggers used across
// owlwatch.
//
// It owns the console and JSON handlers, level parsing, and the
// standardized field keys, and provides a no-op logger for tests and
// wiring code that cannot fail. Prefer these constructors over hand-rolled
// slog setup so every component emits data with the same shape.
package logging
