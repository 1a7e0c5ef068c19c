package main

import (
	"fmt"
	"strconv"
	"strings"

	"castedit/internal/adjust"
	"castedit/internal/calendar"
	"castedit/internal/person"
)

// personRow is the JSON shape of one listed record.
type personRow struct {
	Name           string `json:"name"`
	Age            *int   `json:"age,omitempty"`
	ProfessionName string `json:"professionName"`
	StudioName     string `json:"studioName"`
	Status         string `json:"status"`
	person.Record
}

func newPersonRow(r person.Record, names person.NameTable, current calendar.Date) personRow {
	row := personRow{
		Name:           person.DisplayName(r, names),
		ProfessionName: r.ProfessionDisplay(),
		StudioName:     person.StudioName(r.Studio()),
		Status:         r.State.String(),
		Record:         r,
	}
	if age, ok := calendar.Age(r.BirthDate, current.Long()); ok {
		row.Age = &age
	}
	return row
}

func (p personRow) cells() []string {
	age := "-"
	if p.Age != nil {
		age = strconv.Itoa(*p.Age)
	}
	return []string{
		p.ID.String(),
		p.Name,
		p.ProfessionName,
		p.StudioName,
		age,
		formatUnit(p.Skill()),
		formatUnit(p.SelfEsteem.Float()),
		formatUnit(p.Art()),
		formatUnit(p.Com()),
		p.Status,
	}
}

var listHeaders = []string{"ID", "Name", "Profession", "Studio", "Age", "Skill", "Self-esteem", "Art", "Com", "Status"}

var listAligns = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}

func formatUnit(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// detailFields renders every editable attribute of r for `show`.
func detailFields(r person.Record, names person.NameTable, current calendar.Date) [][2]string {
	row := newPersonRow(r, names, current)
	age := "-"
	if row.Age != nil {
		age = strconv.Itoa(*row.Age)
	}
	fields := [][2]string{
		{"ID", r.ID.String()},
		{"Name", row.Name},
		{"Profession", row.ProfessionName},
		{"Studio", row.StudioName},
		{"Gender", person.GenderLabel(r.Gender)},
		{"Born", orDash(r.BirthDate)},
		{"Age", age},
		{"Skill", starLine(r.Skill())},
		{"Mood", formatUnit(r.Mood.Float())},
		{"Attitude", formatUnit(r.Attitude.Float())},
		{"Self-esteem", formatUnit(r.SelfEsteem.Float())},
		{"Limit", starLine(r.Limit.Float())},
		{"Shady", yesNo(r.IsShady)},
		{"Status", row.Status},
		{"Traits", orDash(strings.Join(person.VisibleTraits(r.Traits), ", "))},
		{"Art", imageLine(r, person.TagArt)},
		{"Com", imageLine(r, person.TagCommercial)},
		{"Genres", genreLine(r.Tags)},
	}
	if rem, ok := calendar.ContractRemaining(r.Contract, current); ok {
		fields = append(fields, [2]string{"Contract days", rem.String()})
	}
	if r.DeathDate != "" {
		fields = append(fields, [2]string{"Died", r.DeathDate})
	}
	return fields
}

// starLine shows a 0..1 value next to its 10-star rendering.
func starLine(v float64) string {
	return fmt.Sprintf("%s (%s/10)", formatUnit(v), adjust.FormatScaled(v, 10))
}

func imageLine(r person.Record, tag string) string {
	value := r.Tags.Read(tag)
	line := fmt.Sprintf("%s (rank %d)", formatUnit(value), person.Rank(value))
	kind := ""
	if r.Profession != nil {
		kind = r.Profession.Kind
	}
	if title := person.ImageTitle(kind, tag, value); title != "" {
		line += " " + title
	}
	return line
}

func genreLine(tags person.TagStore) string {
	values := tags.GenreValues()
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(values))
	for _, gv := range values {
		mark := ""
		if person.Established(gv.Value) {
			mark = "*"
		}
		parts = append(parts, fmt.Sprintf("%s %.1f%s L%d", gv.Genre, gv.Value, mark, person.GenreLevel(gv.Value)))
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
