package person

import (
	"fmt"
	"strings"
)

// Status is the packed condition bitmask stored in a character's "state"
// field. Bits are independent; any combination may be set.
type Status uint32

const (
	StatusHiredByPlayer           Status = 1 << 1
	StatusFired                   Status = 1 << 2
	StatusDead                    Status = 1 << 4
	StatusHiredByCompetitor       Status = 1 << 5
	StatusLocked                  Status = 1 << 6
	StatusInHospital              Status = 1 << 7
	StatusKidnappedByPlayer       Status = 1 << 8
	StatusVacation                Status = 1 << 9
	StatusTired                   Status = 1 << 10
	StatusRequestCooldown         Status = 1 << 11
	StatusOffended                Status = 1 << 12
	StatusThreatening             Status = 1 << 13
	StatusBeating                 Status = 1 << 14
	StatusKilling                 Status = 1 << 15
	StatusKidnapping              Status = 1 << 16
	StatusImprisoned              Status = 1 << 17
	StatusKidnappedByCompetitor   Status = 1 << 18
	StatusSpecialVacation         Status = 1 << 19
	StatusDoingPolicyBonuses      Status = 1 << 20
	StatusOnTheWar                Status = 1 << 21
	StatusCompromisedByCompetitor Status = 1 << 22
	StatusSelectedForPoaching     Status = 1 << 23
)

// Labels used by filters and the CLI.
const (
	LabelDead   = "Dead"
	LabelLocked = "Locked"
	LabelNone   = "None"
)

type statusFlag struct {
	bit   Status
	label string
}

// statusTable is ordered by bit value; Labels reports flags in this order.
var statusTable = []statusFlag{
	{StatusHiredByPlayer, "Hired by Player"},
	{StatusFired, "Fired"},
	{StatusDead, LabelDead},
	{StatusHiredByCompetitor, "Hired by Competitor"},
	{StatusLocked, LabelLocked},
	{StatusInHospital, "In Hospital"},
	{StatusKidnappedByPlayer, "Kidnapped by Player"},
	{StatusVacation, "Vacation"},
	{StatusTired, "Tired"},
	{StatusRequestCooldown, "Request Cooldown"},
	{StatusOffended, "Offended"},
	{StatusThreatening, "Threatening"},
	{StatusBeating, "Beating"},
	{StatusKilling, "Killing"},
	{StatusKidnapping, "Kidnapping"},
	{StatusImprisoned, "Imprisoned"},
	{StatusKidnappedByCompetitor, "Kidnapped by Competitor"},
	{StatusSpecialVacation, "Special Vacation"},
	{StatusDoingPolicyBonuses, "Doing Policy Bonuses"},
	{StatusOnTheWar, "On The War"},
	{StatusCompromisedByCompetitor, "Compromised by Competitor"},
	{StatusSelectedForPoaching, "Selected for Poaching"},
}

var statusByLabel = func() map[string]Status {
	index := make(map[string]Status, len(statusTable))
	for _, flag := range statusTable {
		index[flag.label] = flag.bit
	}
	return index
}()

// StatusLabels lists every known label in bit order.
func StatusLabels() []string {
	out := make([]string, len(statusTable))
	for i, flag := range statusTable {
		out[i] = flag.label
	}
	return out
}

// Labels returns the label of every known bit set in s.
func (s Status) Labels() []string {
	var out []string
	for _, flag := range statusTable {
		if s&flag.bit != 0 {
			out = append(out, flag.label)
		}
	}
	return out
}

// String renders the labels joined for display. A zero mask renders "None";
// a nonzero mask with no known bits renders "Unknown(<mask>)".
func (s Status) String() string {
	if s == 0 {
		return LabelNone
	}
	labels := s.Labels()
	if len(labels) == 0 {
		return fmt.Sprintf("Unknown(%d)", uint32(s))
	}
	return strings.Join(labels, ", ")
}

// Has reports whether the bit for label is set. Unknown labels report false.
func (s Status) Has(label string) bool {
	bit, ok := statusByLabel[label]
	if !ok {
		return false
	}
	return s&bit != 0
}

// With sets or clears the given bits.
func (s Status) With(bits Status, on bool) Status {
	if on {
		return s | bits
	}
	return s &^ bits
}

// unhireable are the bits that keep the player from making an offer.
const unhireable = StatusHiredByPlayer | StatusDead | StatusHiredByCompetitor | StatusLocked | StatusOffended

// HireableByPlayer reports whether none of the blocking bits are set.
func (s Status) HireableByPlayer() bool {
	return s&unhireable == 0
}

// StatusBit resolves a label to its bit.
func StatusBit(label string) (Status, bool) {
	bit, ok := statusByLabel[label]
	return bit, ok
}

// EncodeStatus packs labels into a mask. Unknown labels are an error.
func EncodeStatus(labels ...string) (Status, error) {
	var s Status
	for _, label := range labels {
		bit, ok := statusByLabel[label]
		if !ok {
			return 0, fmt.Errorf("unknown status label %q", label)
		}
		s |= bit
	}
	return s, nil
}
