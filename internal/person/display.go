package person

import (
	"fmt"
	"strconv"
	"strings"
)

// NameTable resolves name-table indices to text.
type NameTable interface {
	Resolve(id int) (string, bool)
}

// DisplayName returns the name shown for r: the custom name when set,
// otherwise both name-table entries, otherwise "Person <id>".
func DisplayName(r Record, names NameTable) string {
	if r.CustomName != nil && *r.CustomName != "" {
		return *r.CustomName
	}
	if names != nil && r.FirstNameID != nil && r.LastNameID != nil {
		return lookupName(names, *r.FirstNameID) + " " + lookupName(names, *r.LastNameID)
	}
	return fmt.Sprintf("Person %s", r.ID)
}

func lookupName(names NameTable, id ID) string {
	idx, err := strconv.Atoi(strings.TrimSpace(string(id)))
	if err != nil {
		return string(id)
	}
	if name, ok := names.Resolve(idx); ok && name != "" {
		return name
	}
	return string(id)
}

// Category names accepted by the backend in addition to raw profession kinds.
const (
	CategoryExecutive      = "Executive"
	CategoryDepartmentHead = "DepartmentHead"
)

// Categories lists the person categories the editor exposes.
var Categories = []string{
	"Actor",
	"Director",
	"Producer",
	"Scriptwriter",
	"FilmEditor",
	"Composer",
	"Cinematographer",
	"Agent",
	CategoryExecutive,
	CategoryDepartmentHead,
}

// ExecutiveProfessions are the profession kinds grouped under Executive.
var ExecutiveProfessions = []string{"CptHR", "CptLawyer", "CptFinancier", "CptPR"}

// DepartmentHeadProfessions are the profession kinds grouped under
// DepartmentHead.
var DepartmentHeadProfessions = []string{
	"LieutScript", "LieutPrep", "LieutProd", "LieutPost", "LieutRelease",
	"LieutSecurity", "LieutProducers", "LieutInfrastructure", "LieutTech",
	"LieutMuseum", "LieutEscort",
}

var professionNames = map[string]string{
	"FilmEditor":   "Editor",
	"Scriptwriter": "Screenwriter",
	"CptHR":        "Human Resources Executive",
	"CptLawyer":    "Legal Executive",
	"CptFinancier": "Financial Executive",
	"CptPR":        "Public Relations Executive",
}

// CategoryKinds expands a category into the profession kinds it covers.
func CategoryKinds(category string) []string {
	switch category {
	case CategoryExecutive:
		return ExecutiveProfessions
	case CategoryDepartmentHead:
		return DepartmentHeadProfessions
	default:
		return []string{category}
	}
}

// IsCategory reports whether category is one the editor exposes.
func IsCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ProfessionName returns a display name for a profession kind.
func ProfessionName(kind string) string {
	if kind == "" {
		return "Unknown"
	}
	if name, ok := professionNames[kind]; ok {
		return name
	}
	return kind
}

// ProfessionDisplay returns the display name for r's profession.
func (r Record) ProfessionDisplay() string {
	if r.Profession == nil {
		return ProfessionName("")
	}
	return ProfessionName(r.Profession.Kind)
}

// GenderLabel renders the gender discriminator. Only 1 is female.
func GenderLabel(gender int) string {
	if gender == 1 {
		return "Female"
	}
	return "Male"
}

var imageTitles = map[string]map[string][4]string{
	"Actor": {
		TagArt:        {"PROMISING TALENT", "COMMANDING PRESENCE", "TRUE ARTIST", "ICON"},
		TagCommercial: {"RISING STAR", "STAR", "SUPERSTAR", "LEGEND"},
	},
	"Director": {
		TagArt:        {"FRESH PERSPECTIVE", "DECISIVE TALENT", "VISIONARY", "GENIUS"},
		TagCommercial: {"FAN FAVORITE", "SENSATION", "PHENOMENON", "HOLLYWOOD GIANT"},
	},
}

// ImageTitle returns the public-image title for an actor or director, or ""
// when the rank is zero or the profession has no titles.
func ImageTitle(kind, tag string, value float64) string {
	rank := Rank(value)
	if rank == 0 {
		return ""
	}
	titles, ok := imageTitles[kind][tag]
	if !ok {
		return ""
	}
	return titles[rank-1]
}
