// Package savefile is the JSON save-file implementation of backend.Backend.
//
// A save is a JSON object (optionally prefixed by a UTF-8 byte order mark)
// whose stateJson.characters array holds the person records. Characters are
// kept as raw key/value maps so fields the editor does not model survive a
// round trip untouched; edits are applied through the mutation engine and
// written back with person.Patch, which only rewrites the keys that changed.
//
// Open takes an exclusive advisory lock so two editors cannot interleave
// writes to the same save. Watch reports modifications made by other
// programs, typically the game itself.
package savefile
