// Package roster builds the filtered, sorted view over a category's records.
//
// Filtering composes independent predicates in a fixed order and skips any
// predicate whose setting is absent. Sorting decorates each record with one
// numeric key, sorts stably, and drops the keys. OrderCache lets a view keep
// its order across edits that change field values without changing which
// records are visible.
package roster
