package mutation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"castedit/internal/person"
)

// Op identifies the kind of edit.
type Op string

const (
	OpSet         Op = "set"
	OpSetText     Op = "setText"
	OpAddTrait    Op = "addTrait"
	OpRemoveTrait Op = "removeTrait"
	OpAddGenre    Op = "addGenre"
	OpRemoveGenre Op = "removeGenre"
)

// Edit is exactly one semantic change to a record. Field applies to OpSet
// and OpSetText; Label carries the trait or genre for the list operations.
type Edit struct {
	Op    Op       `json:"op"`
	Field string   `json:"field,omitempty"`
	Value *float64 `json:"value,omitempty"`
	Text  *string  `json:"text,omitempty"`
	Label string   `json:"label,omitempty"`
}

// Set builds a numeric edit. A nil value means null.
func Set(field string, value *float64) Edit {
	return Edit{Op: OpSet, Field: field, Value: value}
}

// SetValue builds a numeric edit with a concrete value.
func SetValue(field string, value float64) Edit {
	return Set(field, &value)
}

// SetText builds a name edit. A nil value clears the field.
func SetText(field string, value *string) Edit {
	return Edit{Op: OpSetText, Field: field, Text: value}
}

// AddTraitEdit builds an add-trait edit.
func AddTraitEdit(trait string) Edit { return Edit{Op: OpAddTrait, Label: trait} }

// RemoveTraitEdit builds a remove-trait edit.
func RemoveTraitEdit(trait string) Edit { return Edit{Op: OpRemoveTrait, Label: trait} }

// AddGenreEdit builds an add-genre edit.
func AddGenreEdit(genre string) Edit { return Edit{Op: OpAddGenre, Label: genre} }

// RemoveGenreEdit builds a remove-genre edit.
func RemoveGenreEdit(genre string) Edit { return Edit{Op: OpRemoveGenre, Label: genre} }

// Validate checks the edit shape without a record.
func (e Edit) Validate() error {
	switch e.Op {
	case OpSet:
		if !IsNumericField(e.Field) {
			return fmt.Errorf("%w: %q", ErrUnsupportedField, e.Field)
		}
	case OpSetText:
		if !IsTextField(e.Field) {
			return fmt.Errorf("%w: %q", ErrUnsupportedField, e.Field)
		}
	case OpAddTrait, OpRemoveTrait, OpAddGenre, OpRemoveGenre:
		if strings.TrimSpace(e.Label) == "" {
			return ErrEmptyLabel
		}
	default:
		return fmt.Errorf("unknown edit op %q", e.Op)
	}
	return nil
}

// Apply runs the edit against r.
func Apply(r person.Record, e Edit) (person.Record, error) {
	switch e.Op {
	case OpSet:
		return UpdateField(r, e.Field, e.Value)
	case OpSetText:
		return UpdateTextField(r, e.Field, e.Text)
	case OpAddTrait:
		return AddTrait(r, e.Label)
	case OpRemoveTrait:
		return RemoveTrait(r, e.Label)
	case OpAddGenre:
		return AddGenre(r, e.Label)
	case OpRemoveGenre:
		return RemoveGenre(r, e.Label)
	default:
		return r, fmt.Errorf("unknown edit op %q", e.Op)
	}
}

// Key identifies the record attribute the edit targets. Two edits with the
// same key overwrite each other, so only the latest needs persisting.
// Trait and genre toggles are keyed per label.
func (e Edit) Key() string {
	switch e.Op {
	case OpSet, OpSetText:
		return e.Field
	case OpAddTrait, OpRemoveTrait:
		return "trait:" + e.Label
	case OpAddGenre, OpRemoveGenre:
		return "genre:" + e.Label
	default:
		return string(e.Op)
	}
}

// Payload renders the sparse update object the way the save-file editor
// protocol names it: {"mood": 0.5}, {"art": null}, {"addTrait": "LAZY"}.
func (e Edit) Payload() map[string]any {
	switch e.Op {
	case OpSet:
		key := e.Field
		switch e.Field {
		case TagField(person.TagArt):
			key = "art"
		case TagField(person.TagCommercial):
			key = "com"
		}
		if e.Value == nil {
			return map[string]any{key: nil}
		}
		if e.Field == FieldIsShady {
			return map[string]any{key: *e.Value == 1}
		}
		return map[string]any{key: *e.Value}
	case OpSetText:
		if e.Text == nil {
			return map[string]any{e.Field: nil}
		}
		return map[string]any{e.Field: *e.Text}
	default:
		return map[string]any{string(e.Op): e.Label}
	}
}

func (e Edit) String() string {
	data, err := json.Marshal(e.Payload())
	if err != nil {
		return string(e.Op)
	}
	return string(data)
}

// ParseValue parses CLI text into a numeric edit value; "null" means nil.
func ParseValue(text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "null") {
		return nil, nil
	}
	switch strings.ToLower(text) {
	case "true", "yes":
		v := 1.0
		return &v, nil
	case "false", "no":
		v := 0.0
		return &v, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("parse value %q: %w", text, err)
	}
	return &v, nil
}

// ParseText parses CLI text into a text edit value; "null" means nil.
func ParseText(text string) *string {
	if strings.EqualFold(strings.TrimSpace(text), "null") {
		return nil
	}
	return &text
}
