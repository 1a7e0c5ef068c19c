// Package person defines the in-memory projection of a save-file character.
//
// Records are decoded once at the JSON boundary into typed fields: the packed
// status bitmask becomes a Status, the one-entry professions mapping becomes a
// Profession, and the white-tag object becomes a TagStore. Numbers the save
// file keeps as decimal text travel as Decimal and are converted to float64
// only where arithmetic happens.
//
// Record values are treated as immutable. Helpers in this package and in the
// mutation package return modified copies so a reader holding an earlier
// snapshot never observes a partial edit.
package person
