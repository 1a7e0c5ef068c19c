package roster

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"castedit/internal/person"
)

// Selection tokens that map to status and employment flags rather than
// studio ids.
const (
	TokenDead       = person.LabelDead
	TokenLocked     = person.LabelLocked
	TokenUnemployed = "Unemployed"
)

// Gender restricts results to one gender.
type Gender string

const (
	GenderAny    Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Shady restricts results by the shady flag.
type Shady string

const (
	ShadyAny Shady = ""
	ShadyYes Shady = "shady"
	ShadyNo  Shady = "clean"
)

// Filter selects a subset of records. The zero value keeps everything.
type Filter struct {
	ExcludeStudios    []string
	ExcludeDead       bool
	ExcludeLocked     bool
	ExcludeUnemployed bool
	Search            string
	Gender            Gender
	Shady             Shady
	// Status keeps records with every one of these bits set.
	Status person.Status
	// Hireable keeps records the player could make an offer to.
	Hireable bool
}

// ParseSelection splits UI-selected tokens into studio exclusions and flags.
// Unknown tokens are ignored.
func ParseSelection(tokens []string) Filter {
	var f Filter
	for _, raw := range tokens {
		token := strings.TrimSpace(raw)
		switch {
		case person.IsStudioID(token):
			f.ExcludeStudios = append(f.ExcludeStudios, token)
		case token == TokenDead:
			f.ExcludeDead = true
		case token == TokenLocked:
			f.ExcludeLocked = true
		case token == TokenUnemployed:
			f.ExcludeUnemployed = true
		}
	}
	return f
}

// ParseStatus packs status labels for Filter.Status.
func ParseStatus(labels []string) (person.Status, error) {
	var s person.Status
	for _, raw := range labels {
		label := strings.TrimSpace(raw)
		bit, ok := person.StatusBit(label)
		if !ok {
			return 0, fmt.Errorf("unknown status %q (known: %s)", label, strings.Join(person.StatusLabels(), ", "))
		}
		s |= bit
	}
	return s, nil
}

// ApplyAll returns the records that pass every configured predicate, in
// their original order. names may be nil, in which case search matches
// against custom names and "Person <id>" fallbacks only.
func ApplyAll(records []person.Record, f Filter, names person.NameTable) []person.Record {
	out := records
	if len(f.ExcludeStudios) > 0 {
		excluded := make(map[string]struct{}, len(f.ExcludeStudios))
		for _, id := range f.ExcludeStudios {
			excluded[id] = struct{}{}
		}
		out = keep(out, func(r person.Record) bool {
			_, skip := excluded[r.Studio()]
			return !skip
		})
	}
	if f.ExcludeDead {
		out = keep(out, func(r person.Record) bool { return !r.IsDead() })
	}
	if f.ExcludeLocked {
		out = keep(out, func(r person.Record) bool { return !r.IsLocked() })
	}
	if f.ExcludeUnemployed {
		out = keep(out, func(r person.Record) bool { return r.Studio() != person.StudioNone })
	}
	if f.Search != "" {
		lower := cases.Lower(language.Und)
		needle := lower.String(f.Search)
		out = keep(out, func(r person.Record) bool {
			return strings.Contains(lower.String(person.DisplayName(r, names)), needle)
		})
	}
	if f.Gender != GenderAny {
		// Only 1 is female; every other code counts as male.
		male := f.Gender == GenderMale
		out = keep(out, func(r person.Record) bool { return (r.Gender != 1) == male })
	}
	if f.Shady != ShadyAny {
		want := f.Shady == ShadyYes
		out = keep(out, func(r person.Record) bool { return r.IsShady == want })
	}
	if f.Status != 0 {
		out = keep(out, func(r person.Record) bool { return r.State&f.Status == f.Status })
	}
	if f.Hireable {
		out = keep(out, func(r person.Record) bool { return r.State.HireableByPlayer() })
	}
	if len(out) == len(records) {
		return append([]person.Record(nil), records...)
	}
	return out
}

func keep(records []person.Record, pred func(person.Record) bool) []person.Record {
	out := make([]person.Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
