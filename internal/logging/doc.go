// Package logging assembles the structured slog loggers used across castedit.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// standard field names (component, event_type, person_id, edit_key, ...) so
// every component emits records with the same shape. Components receive a
// logger by injection and derive a component logger from it; there is no
// package-level logger. NewNop serves tests and wiring that cannot fail.
package logging
