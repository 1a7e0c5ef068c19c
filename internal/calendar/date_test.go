package calendar

import (
	"testing"
	"time"
)

func TestParseLong(t *testing.T) {
	d, ok := ParseLong("June 14, 2010")
	if !ok || d != (Date{Year: 2010, Month: time.June, Day: 14}) {
		t.Fatalf("unexpected parse: %+v %v", d, ok)
	}
	if d, ok := ParseLong("Today is March 03, 1931"); !ok || d.Day != 3 || d.Month != time.March {
		t.Fatalf("expected embedded date to parse, got %+v", d)
	}
	for _, bad := range []string{"", "Jun 14, 2010", "Smarch 1, 1930", "14-06-2010"} {
		if _, ok := ParseLong(bad); ok {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	d, ok := ParseNumeric("15-06-1990")
	if !ok || d != (Date{Year: 1990, Month: time.June, Day: 15}) {
		t.Fatalf("unexpected parse: %+v %v", d, ok)
	}
	for _, bad := range []string{"", "15-06", "aa-06-1990", "15/06/1990"} {
		if _, ok := ParseNumeric(bad); ok {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestAgeIsAnniversaryExact(t *testing.T) {
	tests := []struct {
		current string
		want    int
	}{
		{"June 14, 2010", 19},
		{"June 15, 2010", 20},
		{"May 30, 2010", 19},
		{"December 31, 2010", 20},
	}
	for _, tc := range tests {
		got, ok := Age("15-06-1990", tc.current)
		if !ok || got != tc.want {
			t.Fatalf("Age(%s) = %d %v, want %d", tc.current, got, ok, tc.want)
		}
	}
	if _, ok := Age("garbage", "June 15, 2010"); ok {
		t.Fatalf("expected malformed birth date to fail")
	}
}

func TestDaysUntilIsAntisymmetric(t *testing.T) {
	pairs := [][2]Date{
		{{1929, time.January, 1}, {1929, time.March, 1}},
		{{1932, time.February, 28}, {1932, time.March, 1}},
		{{1950, time.July, 4}, {1931, time.December, 25}},
		{{1940, time.May, 5}, {1940, time.May, 5}},
	}
	for _, p := range pairs {
		if p[0].DaysUntil(p[1]) != -p[1].DaysUntil(p[0]) {
			t.Fatalf("DaysUntil not antisymmetric for %v %v", p[0], p[1])
		}
	}
	if got := pairs[1][0].DaysUntil(pairs[1][1]); got != 2 {
		t.Fatalf("leap year difference = %d, want 2", got)
	}
}

func TestCurrentDate(t *testing.T) {
	tests := []struct {
		passed string
		want   string
	}{
		{"0.00:00:00", "January 01, 1929"},
		{"31.12:00:00", "February 01, 1929"},
		{"366", "January 02, 1930"},
		{"bogus", "January 01, 1929"},
	}
	for _, tc := range tests {
		if got := CurrentDate(tc.passed).Long(); got != tc.want {
			t.Fatalf("CurrentDate(%q) = %q, want %q", tc.passed, got, tc.want)
		}
	}
	round, ok := ParseLong(CurrentDate("400.00:00:00").Long())
	if !ok || round != CurrentDate("400") {
		t.Fatalf("long form did not round-trip: %+v", round)
	}
}
