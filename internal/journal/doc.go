// Package journal records every persistence call the editor dispatches.
//
// Entries live in a SQLite database under the state directory and carry the
// edit payload, the target record, and whether the backend accepted it. The
// journal is an audit trail only; nothing replays it.
package journal
