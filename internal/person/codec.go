package person

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Raw is a character object as stored in the save file. Keys this package
// does not understand pass through untouched.
type Raw map[string]json.RawMessage

// Save-file keys.
const (
	keyID             = "id"
	keyFirstNameID    = "firstNameId"
	keyLastNameID     = "lastNameId"
	keyCustomName     = "customName"
	keyBirthDate      = "birthDate"
	keyDeathDate      = "deathDate"
	keyCauseOfDeath   = "causeOfDeath"
	keyGender         = "gender"
	keyStudioID       = "studioId"
	keyPortraitBaseID = "portraitBaseId"
	keyState          = "state"
	keyProfessions    = "professions"
	keyMood           = "mood"
	keyAttitude       = "attitude"
	keySelfEsteem     = "selfEsteem"
	keyReadiness      = "readiness"
	keyLimit          = "limit"
	keyLimitLegacy    = "Limit"
	keyIsShady        = "isShady"
	keyWhiteTags      = "whiteTagsNEW"
	keyLabels         = "labels"
	keyContract       = "contract"
	keyEngagements    = "activeOrPlannedMovies"
)

// ErrNotObject is returned when a character is not a JSON object.
var ErrNotObject = errors.New("character is not a JSON object")

// Decode projects a save-file character into a Record. Individual fields
// that fail to decode are left at their zero value.
func Decode(data []byte) (Record, error) {
	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return Record{}, ErrNotObject
	}
	return DecodeRaw(raw), nil
}

// DecodeRaw projects an already-split character object.
func DecodeRaw(raw Raw) Record {
	var r Record
	raw.field(keyID, &r.ID)
	r.FirstNameID = raw.optionalID(keyFirstNameID)
	r.LastNameID = raw.optionalID(keyLastNameID)
	var custom *string
	raw.field(keyCustomName, &custom)
	if custom != nil && *custom != "" {
		r.CustomName = custom
	}
	raw.field(keyBirthDate, &r.BirthDate)
	raw.field(keyDeathDate, &r.DeathDate)
	raw.field(keyCauseOfDeath, &r.CauseOfDeath)
	raw.field(keyGender, &r.Gender)
	var studio ID
	raw.field(keyStudioID, &studio)
	r.StudioID = string(studio)
	raw.field(keyPortraitBaseID, &r.PortraitBaseID)
	var state Decimal
	raw.field(keyState, &state)
	if v, err := strconv.ParseUint(string(state), 10, 32); err == nil {
		r.State = Status(v)
	}
	r.Profession = decodeProfession(raw[keyProfessions])
	raw.field(keyMood, &r.Mood)
	raw.field(keyAttitude, &r.Attitude)
	raw.field(keySelfEsteem, &r.SelfEsteem)
	raw.field(keyReadiness, &r.Readiness)
	if !raw.field(keyLimit, &r.Limit) {
		raw.field(keyLimitLegacy, &r.Limit)
	}
	raw.field(keyIsShady, &r.IsShady)
	r.Tags = decodeTags(raw[keyWhiteTags])
	raw.field(keyLabels, &r.Traits)
	raw.field(keyContract, &r.Contract)
	raw.field(keyEngagements, &r.Engagements)
	return r
}

func (raw Raw) field(key string, dst any) bool {
	data, ok := raw[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (raw Raw) optionalID(key string) *ID {
	var id *ID
	if !raw.field(key, &id) || id == nil {
		return nil
	}
	return id
}

// decodeProfession walks the professions object in document order and keeps
// the first entry.
func decodeProfession(data json.RawMessage) *Profession {
	if len(data) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}
	if !dec.More() {
		return nil
	}
	keyTok, err := dec.Token()
	if err != nil {
		return nil
	}
	kind, ok := keyTok.(string)
	if !ok {
		return nil
	}
	var level Decimal
	if err := dec.Decode(&level); err != nil {
		return &Profession{Kind: kind}
	}
	return &Profession{Kind: kind, Level: level}
}

// decodeTags tolerates legacy shapes: arrays and malformed entries are
// dropped, and an empty object becomes a nil store.
func decodeTags(data json.RawMessage) TagStore {
	if len(data) == 0 {
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	var store TagStore
	for id, entryData := range entries {
		var entry TaggedValue
		if err := json.Unmarshal(entryData, &entry); err != nil {
			continue
		}
		if entry.ID == "" {
			entry.ID = id
		}
		if store == nil {
			store = make(TagStore, len(entries))
		}
		store[id] = entry
	}
	return store
}

// Patch writes every field that differs between before and after into raw.
// Only fields the editor can change are considered; the rest of raw is left
// as it was read.
func Patch(raw Raw, before, after Record) error {
	if raw == nil {
		return ErrNotObject
	}
	for _, codec := range patchCodecs {
		next, ok := codec.encode(after)
		if !ok {
			continue
		}
		nextData, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode %s: %w", codec.keys[0], err)
		}
		if prev, ok := codec.encode(before); ok {
			prevData, err := json.Marshal(prev)
			if err == nil && bytes.Equal(prevData, nextData) {
				continue
			}
		}
		for _, key := range codec.keys {
			raw[key] = nextData
		}
	}
	if err := patchProfession(raw, before.Profession, after.Profession); err != nil {
		return err
	}
	return patchTags(raw, before.Tags, after.Tags)
}

func patchProfession(raw Raw, before, after *Profession) error {
	if after == nil || (before != nil && *before == *after) {
		return nil
	}
	professions := map[string]json.RawMessage{}
	if data, ok := raw[keyProfessions]; ok {
		if err := json.Unmarshal(data, &professions); err != nil || professions == nil {
			professions = map[string]json.RawMessage{}
		}
	}
	level, err := json.Marshal(after.Level)
	if err != nil {
		return fmt.Errorf("encode profession: %w", err)
	}
	professions[after.Kind] = level
	data, err := json.Marshal(professions)
	if err != nil {
		return fmt.Errorf("encode professions: %w", err)
	}
	raw[keyProfessions] = data
	return nil
}

// patchTags rewrites only the tag entries that differ between before and
// after. Every other entry, including ones the decoder could not read, keeps
// its stored bytes. An edited entry keeps keys TaggedValue does not model.
func patchTags(raw Raw, before, after TagStore) error {
	changed := map[string]json.RawMessage{}
	var removed []string
	for id, entry := range after {
		next, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode tag %s: %w", id, err)
		}
		if prev, ok := before[id]; ok {
			if prevData, err := json.Marshal(prev); err == nil && bytes.Equal(prevData, next) {
				continue
			}
		}
		changed[id] = next
	}
	for id := range before {
		if !after.Has(id) {
			removed = append(removed, id)
		}
	}
	if len(changed) == 0 && len(removed) == 0 {
		return nil
	}

	entries := map[string]json.RawMessage{}
	if data, ok := raw[keyWhiteTags]; ok {
		if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
			entries = map[string]json.RawMessage{}
		}
	}
	for _, id := range removed {
		delete(entries, id)
	}
	for id, next := range changed {
		merged, err := overlayObject(entries[id], next)
		if err != nil {
			return fmt.Errorf("encode tag %s: %w", id, err)
		}
		entries[id] = merged
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", keyWhiteTags, err)
	}
	raw[keyWhiteTags] = data
	return nil
}

// overlayObject writes the keys of next over the stored object prev. A prev
// that is not an object is replaced outright.
func overlayObject(prev, next json.RawMessage) (json.RawMessage, error) {
	var base map[string]json.RawMessage
	if len(prev) == 0 || json.Unmarshal(prev, &base) != nil || base == nil {
		return next, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(next, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		base[k] = v
	}
	return json.Marshal(base)
}

type patchCodec struct {
	keys   []string
	encode func(Record) (any, bool)
}

var patchCodecs = []patchCodec{
	{keys: []string{keyFirstNameID}, encode: func(r Record) (any, bool) { return r.FirstNameID, true }},
	{keys: []string{keyLastNameID}, encode: func(r Record) (any, bool) { return r.LastNameID, true }},
	{keys: []string{keyCustomName}, encode: func(r Record) (any, bool) { return r.CustomName, true }},
	{keys: []string{keyBirthDate}, encode: func(r Record) (any, bool) { return r.BirthDate, r.BirthDate != "" }},
	{keys: []string{keyGender}, encode: func(r Record) (any, bool) { return r.Gender, true }},
	{keys: []string{keyPortraitBaseID}, encode: func(r Record) (any, bool) { return r.PortraitBaseID, true }},
	{keys: []string{keyState}, encode: func(r Record) (any, bool) { return uint32(r.State), true }},
	{keys: []string{keyMood}, encode: numberField(func(r Record) Decimal { return r.Mood })},
	{keys: []string{keyAttitude}, encode: numberField(func(r Record) Decimal { return r.Attitude })},
	{keys: []string{keyReadiness}, encode: numberField(func(r Record) Decimal { return r.Readiness })},
	{keys: []string{keyLimit, keyLimitLegacy}, encode: numberField(func(r Record) Decimal { return r.Limit })},
	{keys: []string{keySelfEsteem}, encode: func(r Record) (any, bool) { return r.SelfEsteem, r.SelfEsteem != "" }},
	{keys: []string{keyIsShady}, encode: func(r Record) (any, bool) { return r.IsShady, true }},
	{keys: []string{keyLabels}, encode: func(r Record) (any, bool) {
		if r.Traits == nil {
			return []string{}, true
		}
		return r.Traits, true
	}},
	{keys: []string{keyStudioID}, encode: func(r Record) (any, bool) {
		if r.StudioID == "" {
			return nil, true
		}
		return r.StudioID, true
	}},
}

func numberField(get func(Record) Decimal) func(Record) (any, bool) {
	return func(r Record) (any, bool) {
		v, ok := get(r).Parse()
		if !ok {
			return nil, false
		}
		return json.Number(DecimalOf(v)), true
	}
}
