package calendar

import (
	"strconv"

	"castedit/internal/person"
)

// Remaining is the time left on a contract.
type Remaining struct {
	Days      int
	Unlimited bool
}

func (r Remaining) String() string {
	if r.Unlimited {
		return "∞"
	}
	return strconv.Itoa(r.Days)
}

// ContractEnd returns the date a limited contract expires.
func ContractEnd(c *person.Contract) (Date, bool) {
	if c == nil || c.Unlimited() {
		return Date{}, false
	}
	signed, ok := ParseTimestamp(c.DateOfSigning)
	if !ok {
		return Date{}, false
	}
	return signed.AddYears(c.Years), true
}

// ContractRemaining reports the days left on c as of current. Unlimited
// contracts report Unlimited instead of a count.
func ContractRemaining(c *person.Contract, current Date) (Remaining, bool) {
	if c == nil {
		return Remaining{}, false
	}
	if c.Unlimited() {
		return Remaining{Unlimited: true}, true
	}
	end, ok := ContractEnd(c)
	if !ok {
		return Remaining{}, false
	}
	return Remaining{Days: current.DaysUntil(end)}, true
}
