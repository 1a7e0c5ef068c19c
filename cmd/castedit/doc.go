// Package main hosts the castedit CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, opens the save file under
// its lock, and routes every edit through an editor session so command-line
// edits take the same path as interactive ones: optimistic local update,
// coalesced backend call, journal entry. Rendering helpers live here; the
// editing logic lives in the internal packages.
package main
