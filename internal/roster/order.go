package roster

import "castedit/internal/person"

// OrderCache remembers the last produced order so a view is only resorted
// when its sort settings or its membership change.
type OrderCache struct {
	field Field
	order Order
	ids   []person.ID
	valid bool
}

// Apply orders filtered. A change of sort settings or of the filtered id set
// sorts from scratch. When only field values changed, every id keeps the
// position it had in the previous call.
func (c *OrderCache) Apply(filtered []person.Record, field Field, order Order, ctx Context) []person.Record {
	if !c.valid || c.field != field || c.order != order || !c.SameMembership(filtered) {
		return c.resort(filtered, field, order, ctx)
	}

	byID := make(map[person.ID]person.Record, len(filtered))
	for _, r := range filtered {
		byID[r.ID] = r
	}
	out := make([]person.Record, 0, len(filtered))
	for _, id := range c.ids {
		out = append(out, byID[id])
	}
	return out
}

// SameMembership reports whether filtered holds exactly the cached ids.
func (c *OrderCache) SameMembership(filtered []person.Record) bool {
	if !c.valid || len(filtered) != len(c.ids) {
		return false
	}
	known := make(map[person.ID]struct{}, len(c.ids))
	for _, id := range c.ids {
		known[id] = struct{}{}
	}
	for _, r := range filtered {
		if _, ok := known[r.ID]; !ok {
			return false
		}
	}
	return true
}

// Invalidate forces the next Apply to resort.
func (c *OrderCache) Invalidate() {
	c.valid = false
	c.ids = nil
}

func (c *OrderCache) resort(filtered []person.Record, field Field, order Order, ctx Context) []person.Record {
	out := Sort(filtered, field, order, ctx)
	c.field = field
	c.order = order
	c.valid = true
	c.remember(out)
	return out
}

func (c *OrderCache) remember(records []person.Record) {
	ids := make([]person.ID, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	c.ids = ids
}
