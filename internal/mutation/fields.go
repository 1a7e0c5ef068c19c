package mutation

import (
	"fmt"
	"strings"

	"castedit/internal/person"
)

// Numeric field names accepted by UpdateField.
const (
	FieldMood           = "mood"
	FieldAttitude       = "attitude"
	FieldSelfEsteem     = "selfEsteem"
	FieldLimit          = "limit"
	FieldReadiness      = "readiness"
	FieldSkill          = "skill"
	FieldIsShady        = "isShady"
	FieldBirthYear      = "birthYear"
	FieldGender         = "gender"
	FieldPortraitBaseID = "portraitBaseId"
	FieldState          = "state"
)

// Text field names accepted by UpdateTextField.
const (
	FieldFirstNameID = "firstNameId"
	FieldLastNameID  = "lastNameId"
	FieldCustomName  = "customName"
)

// TagPrefix marks a field that addresses the tag store.
const TagPrefix = "whiteTag:"

// TagField returns the field name addressing tag id.
func TagField(id string) string { return TagPrefix + id }

// TagID extracts the tag id from a tag field name.
func TagID(field string) (string, bool) {
	id, ok := strings.CutPrefix(field, TagPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

type numericSetter func(r *person.Record, value *float64)

var numericFields = map[string]numericSetter{
	FieldMood: func(r *person.Record, v *float64) {
		r.Mood = person.DecimalOf(orZero(v))
	},
	FieldAttitude: func(r *person.Record, v *float64) {
		r.Attitude = person.DecimalOf(orZero(v))
	},
	FieldSelfEsteem: func(r *person.Record, v *float64) {
		r.SelfEsteem = person.DecimalOf(orZero(v))
	},
	FieldLimit: func(r *person.Record, v *float64) {
		r.Limit = person.DecimalOf(orZero(v))
	},
	FieldReadiness: func(r *person.Record, v *float64) {
		r.Readiness = person.DecimalOf(orZero(v))
	},
	FieldSkill: func(r *person.Record, v *float64) {
		if r.Profession == nil {
			return
		}
		p := *r.Profession
		p.Level = person.DecimalOf(orZero(v))
		r.Profession = &p
	},
	FieldIsShady: func(r *person.Record, v *float64) {
		r.IsShady = v != nil && *v == 1
	},
	FieldBirthYear: func(r *person.Record, v *float64) {
		if v == nil || r.BirthDate == "" {
			return
		}
		parts := strings.Split(r.BirthDate, "-")
		if len(parts) != 3 {
			return
		}
		r.BirthDate = fmt.Sprintf("%s-%s-%d", parts[0], parts[1], int(*v))
	},
	FieldGender: func(r *person.Record, v *float64) {
		r.Gender = int(orZero(v))
	},
	FieldPortraitBaseID: func(r *person.Record, v *float64) {
		r.PortraitBaseID = int(orZero(v))
	},
	FieldState: func(r *person.Record, v *float64) {
		r.State = person.Status(uint32(orZero(v)))
	},
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// NumericFields lists every numeric field name, excluding tag fields.
func NumericFields() []string {
	return []string{
		FieldMood, FieldAttitude, FieldSelfEsteem, FieldLimit, FieldReadiness,
		FieldSkill, FieldIsShady, FieldBirthYear, FieldGender,
		FieldPortraitBaseID, FieldState,
	}
}

// IsNumericField reports whether UpdateField accepts field.
func IsNumericField(field string) bool {
	if _, ok := TagID(field); ok {
		return true
	}
	_, ok := numericFields[field]
	return ok
}

// IsTextField reports whether UpdateTextField accepts field.
func IsTextField(field string) bool {
	switch field {
	case FieldFirstNameID, FieldLastNameID, FieldCustomName:
		return true
	}
	return false
}
