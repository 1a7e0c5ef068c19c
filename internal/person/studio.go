package person

import "strings"

// Studio ids. StudioNone is the canonical token for "no studio".
const (
	StudioNone   = "N/A"
	StudioPlayer = "PL"
)

// Studio describes an employer.
type Studio struct {
	ID   string
	Name string
}

// Opponents lists the competitor studios.
var Opponents = []Studio{
	{ID: "GB", Name: "Gerstein Brothers"},
	{ID: "EM", Name: "Evergreen Movies"},
	{ID: "SU", Name: "Supreme"},
	{ID: "HE", Name: "Hephaestus"},
	{ID: "MA", Name: "Marginese"},
}

// NormalizeStudio maps a stored studio id to its canonical form. Missing
// values and the literal "NONE" both become StudioNone.
func NormalizeStudio(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" || strings.EqualFold(id, "NONE") || id == StudioNone {
		return StudioNone
	}
	return id
}

// StudioIDs returns the player studio followed by every opponent.
func StudioIDs() []string {
	out := make([]string, 0, len(Opponents)+1)
	out = append(out, StudioPlayer)
	for _, s := range Opponents {
		out = append(out, s.ID)
	}
	return out
}

// IsStudioID reports whether id names the player or an opponent.
func IsStudioID(id string) bool {
	if id == StudioPlayer {
		return true
	}
	for _, s := range Opponents {
		if s.ID == id {
			return true
		}
	}
	return false
}

// StudioName returns a display name for a normalized id.
func StudioName(id string) string {
	switch id {
	case StudioPlayer:
		return "Player"
	case StudioNone:
		return "Unemployed"
	}
	for _, s := range Opponents {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}
