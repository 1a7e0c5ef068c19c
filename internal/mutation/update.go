package mutation

import (
	"fmt"

	"castedit/internal/person"
)

// UpdateField sets one numeric field. A nil value means null: it removes a
// tag and resets other fields to their zero value, except birthYear which
// is left unchanged.
func UpdateField(r person.Record, field string, value *float64) (person.Record, error) {
	if id, ok := TagID(field); ok {
		out := r.Clone()
		if value == nil {
			out.Tags = out.Tags.Remove(id)
		} else {
			out.Tags = out.Tags.Upsert(id, *value)
		}
		return out, nil
	}
	set, ok := numericFields[field]
	if !ok {
		return r, fmt.Errorf("%w: %q", ErrUnsupportedField, field)
	}
	out := r.Clone()
	set(&out, value)
	return out, nil
}

// UpdateTextField replaces a name field verbatim; nil clears it.
func UpdateTextField(r person.Record, field string, value *string) (person.Record, error) {
	out := r.Clone()
	switch field {
	case FieldFirstNameID:
		out.FirstNameID = idPtr(value)
	case FieldLastNameID:
		out.LastNameID = idPtr(value)
	case FieldCustomName:
		if value == nil {
			out.CustomName = nil
		} else {
			v := *value
			out.CustomName = &v
		}
	default:
		return r, fmt.Errorf("%w: %q", ErrUnsupportedField, field)
	}
	return out, nil
}

func idPtr(value *string) *person.ID {
	if value == nil {
		return nil
	}
	id := person.ID(*value)
	return &id
}

// AddTrait prepends trait. Adding a trait already present returns r as is.
// A trait whose opposite is present is refused.
func AddTrait(r person.Record, trait string) (person.Record, error) {
	if trait == "" {
		return r, ErrEmptyLabel
	}
	if r.HasTrait(trait) {
		return r, nil
	}
	if other, ok := person.ConflictingTrait(trait); ok && r.HasTrait(other) {
		return r, fmt.Errorf("%w: %s has %s", ErrTraitConflict, trait, other)
	}
	out := r.Clone()
	out.Traits = append([]string{trait}, r.Traits...)
	return out, nil
}

// RemoveTrait filters trait out of the trait list.
func RemoveTrait(r person.Record, trait string) (person.Record, error) {
	if trait == "" {
		return r, ErrEmptyLabel
	}
	out := r.Clone()
	traits := make([]string, 0, len(r.Traits))
	for _, t := range r.Traits {
		if t != trait {
			traits = append(traits, t)
		}
	}
	out.Traits = traits
	return out, nil
}

// AddGenre establishes genre at the threshold value. It fails when the
// record already has the maximum number of other established genres.
func AddGenre(r person.Record, genre string) (person.Record, error) {
	if genre == "" {
		return r, ErrEmptyLabel
	}
	if !person.IsGenre(genre) {
		return r, fmt.Errorf("%w: %s", ErrUnknownGenre, genre)
	}
	established := r.Tags.EstablishedGenres()
	already := false
	for _, g := range established {
		if g == genre {
			already = true
			break
		}
	}
	if !already && len(established) >= person.MaxEstablishedGenres {
		return r, fmt.Errorf("%w: %d of %d", ErrGenreCapReached, len(established), person.MaxEstablishedGenres)
	}
	out := r.Clone()
	out.Tags = out.Tags.Upsert(genre, person.EstablishedThreshold)
	return out, nil
}

// RemoveGenre drops the genre tag entirely.
func RemoveGenre(r person.Record, genre string) (person.Record, error) {
	if genre == "" {
		return r, ErrEmptyLabel
	}
	if !person.IsGenre(genre) {
		return r, fmt.Errorf("%w: %s", ErrUnknownGenre, genre)
	}
	out := r.Clone()
	out.Tags = out.Tags.Remove(genre)
	return out, nil
}
