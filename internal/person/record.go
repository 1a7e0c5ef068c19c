package person

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is a record or name-table identifier. The save file stores ids as
// either JSON numbers or strings; both decode to the same text.
type ID string

func (id ID) String() string { return string(id) }

// MarshalJSON emits the id as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(n.String())
	}
	return nil
}

// Profession is the record's single profession entry.
type Profession struct {
	Kind  string  `json:"kind"`
	Level Decimal `json:"level"`
}

// ContractUnlimited is the contract type code for open-ended contracts.
const ContractUnlimited = 2

// Contract is the employment sub-record.
type Contract struct {
	Type           int     `json:"contractType"`
	Years          int     `json:"amount"`
	StartAmount    int     `json:"startAmount"`
	InitialFee     Decimal `json:"initialFee"`
	MonthlySalary  Decimal `json:"monthlySalary"`
	WeightToSalary Decimal `json:"weightToSalary"`
	DateOfSigning  string  `json:"dateOfSigning"`
}

// Unlimited reports whether the contract never expires.
func (c *Contract) Unlimited() bool {
	return c != nil && c.Type == ContractUnlimited
}

// Record is one person.
type Record struct {
	ID             ID                `json:"id"`
	FirstNameID    *ID               `json:"firstNameId,omitempty"`
	LastNameID     *ID               `json:"lastNameId,omitempty"`
	CustomName     *string           `json:"customName,omitempty"`
	BirthDate      string            `json:"birthDate,omitempty"`
	DeathDate      string            `json:"deathDate,omitempty"`
	CauseOfDeath   int               `json:"causeOfDeath,omitempty"`
	Gender         int               `json:"gender"`
	StudioID       string            `json:"studioId,omitempty"`
	PortraitBaseID int               `json:"portraitBaseId,omitempty"`
	State          Status            `json:"state"`
	Profession     *Profession       `json:"profession,omitempty"`
	Mood           Decimal           `json:"mood,omitempty"`
	Attitude       Decimal           `json:"attitude,omitempty"`
	SelfEsteem     Decimal           `json:"selfEsteem,omitempty"`
	Readiness      Decimal           `json:"readiness,omitempty"`
	Limit          Decimal           `json:"limit,omitempty"`
	IsShady        bool              `json:"isShady"`
	Tags           TagStore          `json:"whiteTags,omitempty"`
	Traits         []string          `json:"traits,omitempty"`
	Contract       *Contract         `json:"contract,omitempty"`
	Engagements    []json.RawMessage `json:"engagements,omitempty"`
}

// Clone returns a deep copy safe to modify.
func (r Record) Clone() Record {
	out := r
	out.FirstNameID = cloneID(r.FirstNameID)
	out.LastNameID = cloneID(r.LastNameID)
	if r.CustomName != nil {
		name := *r.CustomName
		out.CustomName = &name
	}
	if r.Profession != nil {
		p := *r.Profession
		out.Profession = &p
	}
	out.Tags = r.Tags.Clone()
	if r.Traits != nil {
		out.Traits = append([]string(nil), r.Traits...)
	}
	if r.Contract != nil {
		c := *r.Contract
		out.Contract = &c
	}
	if r.Engagements != nil {
		out.Engagements = append([]json.RawMessage(nil), r.Engagements...)
	}
	return out
}

func cloneID(id *ID) *ID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// IsDead reports the Dead status bit.
func (r Record) IsDead() bool { return r.State.Has(LabelDead) }

// IsLocked reports the Locked status bit.
func (r Record) IsLocked() bool { return r.State.Has(LabelLocked) }

// IsBusy reports whether the record has any active or planned engagement.
func (r Record) IsBusy() bool { return len(r.Engagements) > 0 }

// Studio returns the normalized owning studio id.
func (r Record) Studio() string { return NormalizeStudio(r.StudioID) }

// Skill returns the profession level, or 0 without a profession.
func (r Record) Skill() float64 {
	if r.Profession == nil {
		return 0
	}
	return r.Profession.Level.Float()
}

// Art returns the artistic public image value.
func (r Record) Art() float64 { return r.Tags.Read(TagArt) }

// Com returns the commercial public image value.
func (r Record) Com() float64 { return r.Tags.Read(TagCommercial) }

// HasTrait reports whether trait is in the trait list.
func (r Record) HasTrait(trait string) bool {
	for _, t := range r.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// BirthYear returns the year component of the stored birth date.
func (r Record) BirthYear() (string, bool) {
	parts := strings.Split(r.BirthDate, "-")
	if len(parts) != 3 {
		return "", false
	}
	return parts[2], true
}
