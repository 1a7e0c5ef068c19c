package person

import "testing"

type sliceNames []string

func (s sliceNames) Resolve(id int) (string, bool) {
	if id < 0 || id >= len(s) {
		return "", false
	}
	return s[id], true
}

func TestDisplayName(t *testing.T) {
	names := sliceNames{"Ann", "Bob", "Smith"}
	first, last, missing := ID("0"), ID("2"), ID("99")
	custom := "Mister X"

	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{"custom wins", Record{ID: "1", CustomName: &custom, FirstNameID: &first, LastNameID: &last}, "Mister X"},
		{"name table", Record{ID: "1", FirstNameID: &first, LastNameID: &last}, "Ann Smith"},
		{"raw id fallback", Record{ID: "1", FirstNameID: &missing, LastNameID: &last}, "99 Smith"},
		{"only one index", Record{ID: "7", FirstNameID: &first}, "Person 7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayName(tc.record, names); got != tc.want {
				t.Fatalf("DisplayName = %q, want %q", got, tc.want)
			}
		})
	}
	if got := DisplayName(Record{ID: "3", FirstNameID: &first, LastNameID: &last}, nil); got != "Person 3" {
		t.Fatalf("expected fallback without a name table, got %q", got)
	}
}

func TestNormalizeStudio(t *testing.T) {
	for _, raw := range []string{"", "NONE", "none", "N/A"} {
		if got := NormalizeStudio(raw); got != StudioNone {
			t.Fatalf("NormalizeStudio(%q) = %q", raw, got)
		}
	}
	if NormalizeStudio("PL") != StudioPlayer || NormalizeStudio("GB") != "GB" {
		t.Fatalf("studio ids must pass through")
	}
	if StudioName("EM") != "Evergreen Movies" || StudioName(StudioNone) != "Unemployed" {
		t.Fatalf("unexpected studio names")
	}
}

func TestCategoryKinds(t *testing.T) {
	if kinds := CategoryKinds(CategoryExecutive); len(kinds) != 4 || kinds[0] != "CptHR" {
		t.Fatalf("unexpected executive kinds %v", kinds)
	}
	if kinds := CategoryKinds("Actor"); len(kinds) != 1 || kinds[0] != "Actor" {
		t.Fatalf("unexpected actor kinds %v", kinds)
	}
	if ProfessionName("FilmEditor") != "Editor" || ProfessionName("") != "Unknown" {
		t.Fatalf("unexpected profession names")
	}
}

func TestImageTitle(t *testing.T) {
	if got := ImageTitle("Actor", TagCommercial, 1.0); got != "LEGEND" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := ImageTitle("Director", TagArt, 0.3); got != "DECISIVE TALENT" {
		t.Fatalf("unexpected title %q", got)
	}
	if ImageTitle("Composer", TagArt, 1.0) != "" || ImageTitle("Actor", TagArt, 0.1) != "" {
		t.Fatalf("expected empty title")
	}
}

func TestTraitTables(t *testing.T) {
	if other, ok := ConflictingTrait("LAZY"); !ok || other != "HARDWORKING" {
		t.Fatalf("unexpected conflict %q %v", other, ok)
	}
	if _, ok := ConflictingTrait("LEADER"); ok {
		t.Fatalf("LEADER has no conflict")
	}
	visible := VisibleTraits([]string{"IMMORTAL", "LAZY", "STERILE"})
	if len(visible) != 1 || visible[0] != "LAZY" {
		t.Fatalf("unexpected visible traits %v", visible)
	}
}
