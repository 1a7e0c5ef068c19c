package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Character is a loosely typed save-file character.
type Character map[string]any

// SampleCharacters returns a small cast covering the shapes the editor must
// handle: string and numeric ids, a custom name, a dead actor, an executive,
// legacy "Limit", and unknown fields.
func SampleCharacters() []Character {
	return []Character{
		{
			"id": 1042, "firstNameId": "3", "lastNameId": "1", "customName": nil,
			"birthDate": "15-06-1900", "gender": 1, "studioId": "PL", "state": 0,
			"professions": map[string]any{"Actor": "0.62"},
			"mood": 0.4, "attitude": 0.7, "selfEsteem": "0.5", "limit": 0.9, "Limit": 0.9,
			"isShady": false, "labels": []string{"LAZY"},
			"whiteTagsNEW": map[string]any{
				"ART": map[string]any{
					"id": "ART", "value": "0.350", "dateAdded": "1929-01-01T00:00:00", "movieId": 0, "IsOverall": false,
					"overallValues": []any{map[string]any{"movieId": 0, "sourceType": 0, "value": "0.350", "dateAdded": "1929-01-01T00:00:00"}},
				},
			},
			"activeOrPlannedMovies": []any{},
			"portraitBaseId": 17,
			"bonusCardsIndex": []int{1, 2, 3},
		},
		{
			"id": "1043", "firstNameId": "0", "lastNameId": "2", "customName": "Smith & Co <Jr>",
			"birthDate": "01-02-1895", "gender": 0, "studioId": "GB", "state": 0,
			"professions": map[string]any{"Actor": "0.80"},
			"mood": 0.1, "attitude": 0.2, "selfEsteem": "1.1", "limit": 1.0,
			"labels": []string{},
		},
		{
			"id": 1044, "firstNameId": "4", "lastNameId": "1",
			"birthDate": "10-10-1880", "deathDate": "01-01-1930", "gender": 1, "studioId": nil, "state": 16,
			"professions": map[string]any{"Actor": "0.10"},
			"mood": 0.0, "attitude": 0.0, "selfEsteem": "0.0", "limit": 0.3,
		},
		{
			"id": 2001, "firstNameId": "0", "lastNameId": "5",
			"birthDate": "03-03-1890", "gender": 0, "studioId": "PL", "state": 0,
			"professions": map[string]any{"CptLawyer": "0.55"},
			"mood": 0.5, "attitude": 0.5, "selfEsteem": "0.5", "limit": 1.0,
		},
		{
			"id": 3001, "firstNameId": "3", "lastNameId": "5",
			"birthDate": "07-07-1899", "gender": 1, "studioId": "PL", "state": 0,
			"professions": map[string]any{"Director": 0.45},
			"mood": 0.3, "attitude": 0.6, "selfEsteem": "0.2", "limit": 0.8,
		},
	}
}

// SampleNames is the name table matching SampleCharacters' name ids.
func SampleNames() []string {
	return []string{"Adam", "Smith", "Jones", "Eve", "Carl", "Harlow"}
}

// WriteSave writes a BOM-prefixed save file holding characters and returns
// its path.
func WriteSave(t testing.TB, path string, characters ...Character) string {
	t.Helper()
	doc := map[string]any{
		"version": "0.9.1",
		"stateJson": map[string]any{
			"timePassed": "800.05:00:00",
			"studioName": "Lumen Pictures",
			"budget":     250000,
			"cash":       120000,
			"reputation": "0.450",
			"influence":  30,
			"movies":     []any{map[string]any{"id": 1}},
			"characters": characters,
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("encode save: %v", err)
	}
	writeBytes(t, path, append([]byte("\ufeff"), data...))
	return path
}

// WriteNameTable writes <dir>/<lang>/CHARACTER_NAMES.json.
func WriteNameTable(t testing.TB, dir, lang string, names ...string) string {
	t.Helper()
	if len(names) == 0 {
		names = SampleNames()
	}
	data, err := json.Marshal(map[string]any{"locStrings": names})
	if err != nil {
		t.Fatalf("encode names: %v", err)
	}
	path := filepath.Join(dir, lang, "CHARACTER_NAMES.json")
	writeBytes(t, path, data)
	return path
}

func writeBytes(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
