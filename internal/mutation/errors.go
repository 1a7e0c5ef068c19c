package mutation

import "errors"

var (
	// ErrUnsupportedField is returned for field names outside the dispatch table.
	ErrUnsupportedField = errors.New("unsupported field")
	// ErrTraitConflict is returned when the opposite trait is already present.
	ErrTraitConflict = errors.New("trait conflicts with an existing trait")
	// ErrGenreCapReached is returned when establishing another genre would
	// exceed the per-record cap.
	ErrGenreCapReached = errors.New("established genre cap reached")
	// ErrUnknownGenre is returned for genre ids outside the genre table.
	ErrUnknownGenre = errors.New("unknown genre")
	// ErrEmptyLabel is returned for blank trait or genre names.
	ErrEmptyLabel = errors.New("label must not be empty")
)
