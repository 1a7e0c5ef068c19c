package person

import "testing"

func TestUpsertCreatesEntryWithBaseHistory(t *testing.T) {
	store := TagStore(nil).Upsert("DRAMA", 4.5)
	entry, ok := store["DRAMA"]
	if !ok {
		t.Fatalf("expected DRAMA entry")
	}
	if entry.Value != "4.500" {
		t.Fatalf("expected fixed 3-decimal text, got %q", entry.Value)
	}
	if entry.DateAdded != "1929-01-01T00:00:00" || entry.MovieID != 0 || entry.IsOverall {
		t.Fatalf("unexpected entry metadata: %+v", entry)
	}
	if len(entry.OverallValues) != 1 || entry.OverallValues[0].Value != "4.500" {
		t.Fatalf("unexpected history: %+v", entry.OverallValues)
	}
}

func TestUpsertUpdatesValueAndBaseEntryOnly(t *testing.T) {
	store := TagStore{
		"ART": {
			ID:        "ART",
			Value:     "0.250",
			DateAdded: "1931-05-02T00:00:00",
			MovieID:   77,
			OverallValues: []SourceEntry{
				{MovieID: 0, SourceType: 0, Value: "0.200", DateAdded: "1931-05-02T00:00:00"},
				{MovieID: 77, SourceType: 3, Value: "0.050", DateAdded: "1932-01-01T00:00:00"},
			},
		},
	}
	next := store.Upsert("ART", 0.5)
	entry := next["ART"]
	if entry.Value != "0.500" {
		t.Fatalf("value not updated: %q", entry.Value)
	}
	if entry.DateAdded != "1931-05-02T00:00:00" || entry.MovieID != 77 {
		t.Fatalf("creation metadata changed: %+v", entry)
	}
	if entry.OverallValues[0].Value != "0.500" || entry.OverallValues[1].Value != "0.050" {
		t.Fatalf("unexpected history: %+v", entry.OverallValues)
	}
	if store["ART"].Value != "0.250" || store["ART"].OverallValues[0].Value != "0.200" {
		t.Fatalf("receiver was modified: %+v", store["ART"])
	}
}

func TestRemoveRoundTrip(t *testing.T) {
	base := TagStore(nil).Upsert("COM", 0.4).Upsert("HORROR", 9)

	after := base.Upsert("DRAMA", 13).Remove("DRAMA")
	for _, id := range []string{"COM", "HORROR", "DRAMA"} {
		if after.Read(id) != base.Read(id) {
			t.Fatalf("Read(%s) = %v, want %v", id, after.Read(id), base.Read(id))
		}
	}

	only := TagStore(nil).Upsert("DRAMA", 2).Remove("DRAMA")
	if only != nil {
		t.Fatalf("expected nil store after removing last tag, got %v", only)
	}
	if only.Read("DRAMA") != 0 {
		t.Fatalf("nil store must read 0")
	}
	if empty := (TagStore{}).Remove("DRAMA"); empty != nil {
		t.Fatalf("expected nil store when removing from an empty store, got %v", empty)
	}
}

func TestUpsertKeepsEmptyHistory(t *testing.T) {
	store := TagStore{
		"ART": {ID: "ART", Value: "0.3", OverallValues: []SourceEntry{}},
		"COM": {ID: "COM", Value: "0.1", OverallValues: []SourceEntry{}},
	}
	next := store.Upsert("COM", 0.2)
	if next["ART"].OverallValues == nil || next["COM"].OverallValues == nil {
		t.Fatalf("empty history must stay an empty list, got %+v", next)
	}
	if store.Read("COM") != 0.1 {
		t.Fatalf("receiver modified: %v", store.Read("COM"))
	}
}

func TestReadCoercesText(t *testing.T) {
	store := TagStore{
		"ART": {ID: "ART", Value: "0.75"},
		"COM": {ID: "COM", Value: "garbage"},
	}
	if store.Read("ART") != 0.75 {
		t.Fatalf("unexpected ART %v", store.Read("ART"))
	}
	if store.Read("COM") != 0 {
		t.Fatalf("malformed value must read 0")
	}
	if store.Read("MISSING") != 0 {
		t.Fatalf("missing tag must read 0")
	}
}

func TestEstablishedThreshold(t *testing.T) {
	store := TagStore(nil).Upsert("COMEDY", 11.999)
	if len(store.EstablishedGenres()) != 0 {
		t.Fatalf("11.999 must not be established")
	}
	store = store.Upsert("COMEDY", 12.0)
	got := store.EstablishedGenres()
	if len(got) != 1 || got[0] != "COMEDY" {
		t.Fatalf("expected COMEDY established, got %v", got)
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{0, 0}, {0.149, 0}, {0.15, 1}, {0.3, 2}, {0.69, 2}, {0.7, 3}, {0.99, 3}, {1, 4},
	}
	for _, tc := range tests {
		if got := Rank(tc.value); got != tc.want {
			t.Fatalf("Rank(%v) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestGenreLevel(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{0, 0}, {0.1, 1}, {4, 2}, {8, 3}, {11.999, 3}, {12, 4},
	}
	for _, tc := range tests {
		if got := GenreLevel(tc.value); got != tc.want {
			t.Fatalf("GenreLevel(%v) = %d, want %d", tc.value, got, tc.want)
		}
	}
}
