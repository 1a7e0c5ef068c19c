package roster

import (
	"strings"
	"testing"

	"castedit/internal/person"
)

type tableNames []string

func (n tableNames) Resolve(id int) (string, bool) {
	if id < 0 || id >= len(n) {
		return "", false
	}
	return n[id], true
}

func ref(s string) *person.ID {
	id := person.ID(s)
	return &id
}

func sampleRecords() []person.Record {
	return []person.Record{
		{ID: "1", FirstNameID: ref("0"), LastNameID: ref("2"), StudioID: "GB", Profession: &person.Profession{Kind: "Actor", Level: "0.5"}},
		{ID: "2", FirstNameID: ref("1"), LastNameID: ref("2"), StudioID: "PL", Profession: &person.Profession{Kind: "Actor", Level: "0.9"}},
		{ID: "3", FirstNameID: ref("1"), LastNameID: ref("3"), StudioID: "NONE", State: person.StatusDead, Profession: &person.Profession{Kind: "Actor", Level: "0.2"}},
		{ID: "4", FirstNameID: ref("0"), LastNameID: ref("3"), StudioID: "EM", State: person.StatusLocked, Gender: 1, IsShady: true},
		{ID: "5", StudioID: "", Gender: 2, Profession: &person.Profession{Kind: "Actor", Level: "0.5"}},
	}
}

var names = tableNames{"Ann", "Bob", "Smith", "Jones"}

func ids(records []person.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = string(r.ID)
	}
	return out
}

func equalIDs(t *testing.T, got []person.Record, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got ids %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got ids %v, want %v", g, want)
		}
	}
}

func TestParseSelection(t *testing.T) {
	f := ParseSelection([]string{"GB", "Dead", "Unemployed", "bogus", "PL"})
	if len(f.ExcludeStudios) != 2 || f.ExcludeStudios[0] != "GB" || f.ExcludeStudios[1] != "PL" {
		t.Fatalf("unexpected studios %v", f.ExcludeStudios)
	}
	if !f.ExcludeDead || f.ExcludeLocked || !f.ExcludeUnemployed {
		t.Fatalf("unexpected flags %+v", f)
	}
}

func TestApplyAllPredicates(t *testing.T) {
	records := sampleRecords()
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero value keeps all", Filter{}, []string{"1", "2", "3", "4", "5"}},
		{"exclude studio", Filter{ExcludeStudios: []string{"GB"}}, []string{"2", "3", "4", "5"}},
		{"exclude dead", Filter{ExcludeDead: true}, []string{"1", "2", "4", "5"}},
		{"exclude locked", Filter{ExcludeLocked: true}, []string{"1", "2", "3", "5"}},
		{"exclude unemployed", Filter{ExcludeUnemployed: true}, []string{"1", "2", "4"}},
		{"search is case insensitive", Filter{Search: "SMITH"}, []string{"1", "2"}},
		{"search fallback name", Filter{Search: "person 5"}, []string{"5"}},
		{"female only", Filter{Gender: GenderFemale}, []string{"4"}},
		{"male includes unknown codes", Filter{Gender: GenderMale}, []string{"1", "2", "3", "5"}},
		{"search keeps surrounding spaces", Filter{Search: " smith"}, []string{"1", "2"}},
		{"search with trailing space", Filter{Search: "smith "}, nil},
		{"not shady", Filter{Shady: ShadyNo}, []string{"1", "2", "3", "5"}},
		{"status bits", Filter{Status: person.StatusLocked}, []string{"4"}},
		{"hireable", Filter{Hireable: true}, []string{"1", "2", "5"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			equalIDs(t, ApplyAll(records, tc.filter, names), tc.want...)
		})
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus([]string{person.LabelDead, " " + person.LabelLocked})
	if err != nil {
		t.Fatalf("ParseStatus: %v", err)
	}
	if got != person.StatusDead|person.StatusLocked {
		t.Fatalf("unexpected mask %d", got)
	}
	if _, err := ParseStatus([]string{"Sleepy"}); err == nil || !strings.Contains(err.Error(), person.LabelDead) {
		t.Fatalf("expected unknown status error listing labels, got %v", err)
	}
}

func TestApplyAllIntersectsPredicates(t *testing.T) {
	got := ApplyAll(sampleRecords(), Filter{ExcludeStudios: []string{"GB"}, Search: "Smith"}, names)
	equalIDs(t, got, "2")
}

func TestSortStableAndReversible(t *testing.T) {
	records := sampleRecords()
	asc := Sort(records, FieldSkill, Asc, Context{})
	equalIDs(t, asc, "4", "3", "1", "5", "2")
	desc := Sort(records, FieldSkill, Desc, Context{})
	equalIDs(t, desc, "2", "1", "5", "3", "4")
}

func TestSortByAgeNeedsCurrentDate(t *testing.T) {
	records := []person.Record{
		{ID: "a", BirthDate: "01-01-1900"},
		{ID: "b", BirthDate: "01-01-1910"},
		{ID: "c"},
	}
	equalIDs(t, Sort(records, FieldAge, Desc, Context{CurrentDate: "January 01, 1930"}), "a", "b", "c")
	equalIDs(t, Sort(records, FieldAge, Desc, Context{}), "a", "b", "c")
	if Key(records[0], FieldAge, Context{CurrentDate: "January 01, 1930"}) != 30 {
		t.Fatalf("unexpected age key")
	}
}

func TestSortByTags(t *testing.T) {
	records := []person.Record{
		{ID: "a", Tags: person.TagStore(nil).Upsert(person.TagArt, 0.2)},
		{ID: "b", Tags: person.TagStore(nil).Upsert(person.TagArt, 0.8)},
		{ID: "c"},
	}
	equalIDs(t, Sort(records, FieldArt, Desc, Context{}), "b", "a", "c")
	equalIDs(t, Sort(records, FieldCom, Asc, Context{}), "a", "b", "c")
}

func TestOrderCacheKeepsPositionsAcrossValueEditsOnly(t *testing.T) {
	var cache OrderCache
	records := sampleRecords()
	first := cache.Apply(records, FieldSkill, Desc, Context{})
	equalIDs(t, first, "2", "1", "5", "3", "4")

	edited := append([]person.Record(nil), records...)
	edited[3].Profession = &person.Profession{Kind: "Actor", Level: "1.0"}
	if !cache.SameMembership(edited) {
		t.Fatalf("value edit must not change membership")
	}
	equalIDs(t, cache.Apply(edited, FieldSkill, Desc, Context{}), "2", "1", "5", "3", "4")

	shrunk := edited[1:]
	if cache.SameMembership(shrunk) {
		t.Fatalf("dropping a record must change membership")
	}
	equalIDs(t, cache.Apply(shrunk, FieldSkill, Desc, Context{}), "4", "2", "5", "3")

	grown := append(append([]person.Record(nil), edited[1:]...), person.Record{ID: "6"})
	equalIDs(t, cache.Apply(grown, FieldSkill, Desc, Context{}), "4", "2", "5", "3", "6")

	equalIDs(t, cache.Apply(grown, FieldSkill, Asc, Context{}), "6", "3", "5", "2", "4")
}
