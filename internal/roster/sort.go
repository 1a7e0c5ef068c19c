package roster

import (
	"cmp"
	"fmt"
	"slices"

	"castedit/internal/calendar"
	"castedit/internal/person"
)

// Field is a sortable attribute.
type Field string

const (
	FieldSkill      Field = "skill"
	FieldSelfEsteem Field = "selfEsteem"
	FieldAge        Field = "age"
	FieldArt        Field = "art"
	FieldCom        Field = "com"
)

// Fields lists every sortable attribute.
var Fields = []Field{FieldSkill, FieldSelfEsteem, FieldAge, FieldArt, FieldCom}

// Order is the sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// ParseOrder validates a direction.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case Asc, Desc:
		return Order(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Context carries data some keys need. CurrentDate is long-form text.
type Context struct {
	CurrentDate string
}

// Key computes the sort key for one record. Missing data yields 0.
func Key(r person.Record, field Field, ctx Context) float64 {
	switch field {
	case FieldSkill:
		return r.Skill()
	case FieldSelfEsteem:
		return r.SelfEsteem.Float()
	case FieldAge:
		if r.BirthDate == "" || ctx.CurrentDate == "" {
			return 0
		}
		age, ok := calendar.Age(r.BirthDate, ctx.CurrentDate)
		if !ok {
			return 0
		}
		return float64(age)
	case FieldArt:
		return r.Art()
	case FieldCom:
		return r.Com()
	default:
		return 0
	}
}

type decorated struct {
	key    float64
	record person.Record
}

// Sort returns records ordered by field. Equal keys keep their input order
// in both directions.
func Sort(records []person.Record, field Field, order Order, ctx Context) []person.Record {
	items := make([]decorated, len(records))
	for i, r := range records {
		items[i] = decorated{key: Key(r, field, ctx), record: r}
	}
	slices.SortStableFunc(items, func(a, b decorated) int {
		c := cmp.Compare(a.key, b.key)
		if order == Desc {
			return -c
		}
		return c
	})
	out := make([]person.Record, len(items))
	for i, item := range items {
		out[i] = item.record
	}
	return out
}
