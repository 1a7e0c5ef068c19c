package calendar

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a proleptic Gregorian calendar day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Epoch is the first day of the simulation.
var Epoch = Date{Year: 1929, Month: time.January, Day: 1}

var longForm = regexp.MustCompile(`(\w+) (\d+), (\d+)`)

var monthsByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for month := time.January; month <= time.December; month++ {
		m[month.String()] = month
	}
	return m
}()

// ParseLong parses "June 15, 2010". Only full English month names are
// recognized.
func ParseLong(text string) (Date, bool) {
	match := longForm.FindStringSubmatch(text)
	if match == nil {
		return Date{}, false
	}
	month, ok := monthsByName[match[1]]
	if !ok {
		return Date{}, false
	}
	day, err := strconv.Atoi(match[2])
	if err != nil {
		return Date{}, false
	}
	year, err := strconv.Atoi(match[3])
	if err != nil {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// ParseNumeric parses "DD-MM-YYYY".
func ParseNumeric(text string) (Date, bool) {
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) != 3 {
		return Date{}, false
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Date{}, false
		}
		nums[i] = n
	}
	return Date{Year: nums[2], Month: time.Month(nums[1]), Day: nums[0]}, true
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

// ParseTimestamp parses an ISO timestamp such as a contract signing date,
// keeping only the calendar day.
func ParseTimestamp(text string) (Date, bool) {
	text = strings.TrimSpace(text)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return FromTime(t), true
		}
	}
	return Date{}, false
}

// FromTime truncates t to its calendar day.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of d. Out-of-range months and days normalize.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// AddYears returns d shifted by n years. February 29 rolls to March 1.
func (d Date) AddYears(n int) Date {
	return FromTime(d.Time().AddDate(n, 0, 0))
}

// Long renders "January 02, 1929", matching the save file's clock text.
func (d Date) Long() string {
	return fmt.Sprintf("%s %02d, %d", d.Month, d.Day, d.Year)
}

// Short renders "Jan 2, 1929" for tables.
func (d Date) Short() string {
	return fmt.Sprintf("%s %d, %d", d.Month.String()[:3], d.Day, d.Year)
}

// Numeric renders "DD-MM-YYYY".
func (d Date) Numeric() string {
	return fmt.Sprintf("%02d-%02d-%d", d.Day, int(d.Month), d.Year)
}

func (d Date) String() string { return d.Long() }

// AgeTo returns the number of full years from d to current.
func (d Date) AgeTo(current Date) int {
	age := current.Year - d.Year
	if current.Month < d.Month || (current.Month == d.Month && current.Day < d.Day) {
		age--
	}
	return age
}

const dayDuration = 24 * time.Hour

// DaysUntil returns the signed number of days from d to target, rounding
// partial days up.
func (d Date) DaysUntil(target Date) int {
	diff := target.Time().Sub(d.Time())
	return int(math.Ceil(float64(diff) / float64(dayDuration)))
}

// Age computes the age for a DD-MM-YYYY birth date at a long-form current
// date. Either text failing to parse reports false.
func Age(birth, current string) (int, bool) {
	b, ok := ParseNumeric(birth)
	if !ok {
		return 0, false
	}
	c, ok := ParseLong(current)
	if !ok {
		return 0, false
	}
	return b.AgeTo(c), true
}

// CurrentDate derives the simulation date from the save file's elapsed
// time text "D.hh:mm:ss". Unparseable text counts as zero days.
func CurrentDate(timePassed string) Date {
	daysText, _, _ := strings.Cut(strings.TrimSpace(timePassed), ".")
	days, err := strconv.Atoi(daysText)
	if err != nil {
		days = 0
	}
	return Epoch.AddDays(days)
}
