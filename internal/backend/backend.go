// Package backend defines the persistence collaborator the editor talks to.
package backend

import (
	"context"
	"errors"

	"castedit/internal/mutation"
	"castedit/internal/person"
)

var (
	// ErrNotFound reports an edit addressed to a record that no longer exists.
	ErrNotFound = errors.New("person not found")
	// ErrNoSaveLoaded reports a call made before any save file was opened.
	ErrNoSaveLoaded = errors.New("no save file loaded")
)

// Backend owns the authoritative record collection.
//
// UpdateOne applies exactly one semantic edit. UpdateMany sets a numeric
// field on every record of a category owned by group and returns how many
// records were touched. CurrentDate returns long-form calendar text such as
// "March 04, 1931".
type Backend interface {
	ListByCategory(ctx context.Context, category string) ([]person.Record, error)
	UpdateOne(ctx context.Context, category string, id person.ID, edit mutation.Edit) error
	UpdateMany(ctx context.Context, category, group, field string, value float64) (int, error)
	TranslationTable(ctx context.Context, lang string) ([]string, error)
	CurrentDate(ctx context.Context) (string, error)
}
