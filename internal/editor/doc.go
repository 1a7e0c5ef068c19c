// Package editor runs an editing session over one category of records.
//
// A Session keeps the category's records as an immutable snapshot. An edit
// builds a new record through the mutation engine, swaps a new snapshot in
// (readers holding the old slice are unaffected), and schedules the matching
// backend call through a per-field coalescer so rapid repeats collapse into
// one write. Backend failures are logged, journaled, and delivered on
// Notices; the optimistic local value is kept.
package editor
