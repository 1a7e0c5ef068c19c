package savefile

import (
	"context"
	"encoding/json"
	"fmt"

	"castedit/internal/backend"
	"castedit/internal/logging"
	"castedit/internal/mutation"
	"castedit/internal/person"
)

const (
	keyProfessions = "professions"
	keyCustomName  = "customName"
)

// professionIn returns the first kind of category the character holds.
func professionIn(obj person.Raw, category string) (person.Profession, bool) {
	var profs map[string]person.Decimal
	if json.Unmarshal(obj[keyProfessions], &profs) != nil {
		return person.Profession{}, false
	}
	for _, kind := range person.CategoryKinds(category) {
		if level, ok := profs[kind]; ok {
			return person.Profession{Kind: kind, Level: level}, true
		}
	}
	return person.Profession{}, false
}

// recordFor decodes a character as a member of category. The record's
// profession is the one that put it in the category.
func recordFor(obj person.Raw, category string) (person.Record, bool) {
	if obj == nil {
		return person.Record{}, false
	}
	prof, ok := professionIn(obj, category)
	if !ok {
		return person.Record{}, false
	}
	r := person.DecodeRaw(obj)
	r.Profession = &prof
	return r, true
}

// ListByCategory returns every character holding a profession of category.
func (f *File) ListByCategory(ctx context.Context, category string) ([]person.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.root == nil {
		return nil, backend.ErrNoSaveLoaded
	}
	var records []person.Record
	for _, ch := range f.characters {
		if r, ok := recordFor(ch.obj, category); ok {
			records = append(records, r)
		}
	}
	return records, nil
}

// UpdateOne applies edit to the character of category with id.
func (f *File) UpdateOne(ctx context.Context, category string, id person.ID, edit mutation.Edit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := edit.Validate(); err != nil {
		return err
	}
	clearsCustomName := edit.Op == mutation.OpSetText && edit.Field == mutation.FieldCustomName &&
		(edit.Text == nil || *edit.Text == "")
	if clearsCustomName {
		edit.Text = nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.root == nil {
		return backend.ErrNoSaveLoaded
	}
	for i := range f.characters {
		ch := &f.characters[i]
		before, ok := recordFor(ch.obj, category)
		if !ok || before.ID != id {
			continue
		}
		after, err := mutation.Apply(before, edit)
		if err != nil {
			return err
		}
		if err := person.Patch(ch.obj, before, after); err != nil {
			return fmt.Errorf("patch character %s: %w", id, err)
		}
		if clearsCustomName {
			ch.obj[keyCustomName] = json.RawMessage("null")
		}
		ch.dirty = true
		f.dirty = true
		f.logger.Debug("character updated",
			logging.String(logging.FieldCategory, category),
			logging.String(logging.FieldPersonID, id.String()),
			logging.String(logging.FieldEditKey, edit.Key()))
		return nil
	}
	return fmt.Errorf("%w: %s %s", backend.ErrNotFound, category, id)
}

// UpdateMany sets a numeric field on every character of category employed
// by group.
func (f *File) UpdateMany(ctx context.Context, category, group, field string, value float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	edit := mutation.SetValue(field, value)
	if err := edit.Validate(); err != nil {
		return 0, err
	}
	group = person.NormalizeStudio(group)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.root == nil {
		return 0, backend.ErrNoSaveLoaded
	}
	count := 0
	for i := range f.characters {
		ch := &f.characters[i]
		before, ok := recordFor(ch.obj, category)
		if !ok || before.Studio() != group {
			continue
		}
		after, err := mutation.Apply(before, edit)
		if err != nil {
			return count, err
		}
		if err := person.Patch(ch.obj, before, after); err != nil {
			return count, fmt.Errorf("patch character %s: %w", before.ID, err)
		}
		ch.dirty = true
		count++
	}
	if count > 0 {
		f.dirty = true
	}
	f.logger.Info("batch update applied",
		logging.String(logging.FieldCategory, category),
		logging.String("group", group),
		logging.String(logging.FieldField, field),
		logging.Int("count", count))
	return count, nil
}
