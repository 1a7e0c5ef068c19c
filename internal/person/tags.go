package person

import (
	"slices"
	"sort"
)

// Well-known tag ids.
const (
	TagArt        = "ART"
	TagCommercial = "COM"
)

const (
	// EstablishedThreshold is the tag value at which a genre counts as
	// established for a character.
	EstablishedThreshold = 12.0
	// MaxEstablishedGenres caps how many genres may be established at once.
	MaxEstablishedGenres = 3

	baseDateAdded = "1929-01-01T00:00:00"
	tagPlaces     = 3
)

// Genres lists the genre tag ids in display order.
var Genres = []string{
	"ACTION",
	"DRAMA",
	"HISTORICAL",
	"THRILLER",
	"ROMANCE",
	"DETECTIVE",
	"COMEDY",
	"ADVENTURE",
	"HORROR",
	"SCIENCE_FICTION",
}

var genreSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Genres))
	for _, g := range Genres {
		set[g] = struct{}{}
	}
	return set
}()

// IsGenre reports whether id names a genre tag.
func IsGenre(id string) bool {
	_, ok := genreSet[id]
	return ok
}

// SourceEntry is one contribution to a tag's overall value.
type SourceEntry struct {
	MovieID    int64   `json:"movieId"`
	SourceType int     `json:"sourceType"`
	Value      Decimal `json:"value"`
	DateAdded  string  `json:"dateAdded"`
}

func (e SourceEntry) isBase() bool {
	return e.MovieID == 0 && e.SourceType == 0
}

// TaggedValue is a single white-tag entry.
type TaggedValue struct {
	ID            string        `json:"id"`
	Value         Decimal       `json:"value"`
	DateAdded     string        `json:"dateAdded"`
	MovieID       int64         `json:"movieId"`
	IsOverall     bool          `json:"IsOverall"`
	OverallValues []SourceEntry `json:"overallValues"`
}

// NewTaggedValue builds a fresh entry carrying a single base contribution.
func NewTaggedValue(id string, value float64) TaggedValue {
	text := FixedDecimal(value, tagPlaces)
	return TaggedValue{
		ID:        id,
		Value:     text,
		DateAdded: baseDateAdded,
		OverallValues: []SourceEntry{{
			Value:     text,
			DateAdded: baseDateAdded,
		}},
	}
}

func (v TaggedValue) clone() TaggedValue {
	v.OverallValues = slices.Clone(v.OverallValues)
	return v
}

// TagStore maps tag id to entry. A nil store means the character has no
// white tags at all, which the save file distinguishes from an empty object.
type TagStore map[string]TaggedValue

// Has reports whether id is present.
func (s TagStore) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Read returns the numeric value for id, or 0 when absent or malformed.
func (s TagStore) Read(id string) float64 {
	entry, ok := s[id]
	if !ok {
		return 0
	}
	return entry.Value.Float()
}

// Upsert returns a copy of s with id set to value. Existing entries keep
// their history; the base contribution is updated alongside the headline
// value. The receiver is never modified.
func (s TagStore) Upsert(id string, value float64) TagStore {
	out := s.Clone()
	if out == nil {
		out = make(TagStore, 1)
	}
	entry, ok := out[id]
	if !ok {
		out[id] = NewTaggedValue(id, value)
		return out
	}
	entry = entry.clone()
	text := FixedDecimal(value, tagPlaces)
	entry.Value = text
	for i := range entry.OverallValues {
		if entry.OverallValues[i].isBase() {
			entry.OverallValues[i].Value = text
		}
	}
	out[id] = entry
	return out
}

// Remove returns a copy of s without id. A store left with no entries is
// always nil.
func (s TagStore) Remove(id string) TagStore {
	if len(s) == 0 || (len(s) == 1 && s.Has(id)) {
		return nil
	}
	if !s.Has(id) {
		return s
	}
	out := make(TagStore, len(s)-1)
	for k, v := range s {
		if k != id {
			out[k] = v.clone()
		}
	}
	return out
}

// Clone deep-copies the store.
func (s TagStore) Clone() TagStore {
	if s == nil {
		return nil
	}
	out := make(TagStore, len(s))
	for k, v := range s {
		out[k] = v.clone()
	}
	return out
}

// IDs returns the tag ids in sorted order.
func (s TagStore) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Established reports whether a genre value counts as established.
func Established(value float64) bool {
	return value >= EstablishedThreshold
}

// GenreThresholds are the values at which a genre reaches levels 2, 3 and 4.
var GenreThresholds = []float64{4, 8, EstablishedThreshold}

// GenreLevel buckets a genre value into 0..4 for display. Any positive value
// is at least level 1.
func GenreLevel(value float64) int {
	for i := len(GenreThresholds) - 1; i >= 0; i-- {
		if value >= GenreThresholds[i] {
			return i + 2
		}
	}
	if value > 0 {
		return 1
	}
	return 0
}

// GenreValue pairs a genre with the character's value for it.
type GenreValue struct {
	Genre string
	Value float64
}

// GenreValues returns the genres present in the store in display order.
func (s TagStore) GenreValues() []GenreValue {
	var out []GenreValue
	for _, g := range Genres {
		if entry, ok := s[g]; ok {
			out = append(out, GenreValue{Genre: g, Value: entry.Value.Float()})
		}
	}
	return out
}

// EstablishedGenres returns the genres at or above the threshold.
func (s TagStore) EstablishedGenres() []string {
	var out []string
	for _, gv := range s.GenreValues() {
		if Established(gv.Value) {
			out = append(out, gv.Genre)
		}
	}
	return out
}

// Rank converts a 0..1 public image value into a 0..4 star rank. Only a
// perfect 1.0 reaches the top rank.
func Rank(value float64) int {
	switch {
	case value == 1.0:
		return 4
	case value >= 0.70:
		return 3
	case value >= 0.30:
		return 2
	case value >= 0.15:
		return 1
	default:
		return 0
	}
}
