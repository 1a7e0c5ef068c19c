package person

import (
	"sort"
	"testing"
)

func TestStatusLabelsReportsEveryBit(t *testing.T) {
	mask := StatusDead | StatusLocked | StatusVacation
	labels := mask.Labels()
	want := []string{"Dead", "Locked", "Vacation"}
	if len(labels) != len(want) {
		t.Fatalf("expected %d labels, got %v", len(want), labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("label %d = %q, want %q", i, labels[i], want[i])
		}
	}
	if got := mask.String(); got != "Dead, Locked, Vacation" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestStatusStringSentinels(t *testing.T) {
	tests := []struct {
		mask Status
		want string
	}{
		{0, "None"},
		{1, "Unknown(1)"},
		{1 << 30, "Unknown(1073741824)"},
		{StatusFired, "Fired"},
	}
	for _, tc := range tests {
		if got := tc.mask.String(); got != tc.want {
			t.Fatalf("Status(%d).String() = %q, want %q", uint32(tc.mask), got, tc.want)
		}
	}
}

func TestStatusHasAgreesWithLabels(t *testing.T) {
	masks := []Status{0, StatusDead, StatusDead | StatusKidnapping | StatusOnTheWar, 0xFFFFFF}
	for _, mask := range masks {
		present := map[string]bool{}
		for _, label := range mask.Labels() {
			present[label] = true
		}
		for _, label := range StatusLabels() {
			if mask.Has(label) != present[label] {
				t.Fatalf("mask %d: Has(%q)=%v but labels=%v", uint32(mask), label, mask.Has(label), mask.Labels())
			}
		}
	}
	if StatusDead.Has("Busy") {
		t.Fatalf("unknown label must report false")
	}
}

func TestStatusDecodeIgnoresBitOrder(t *testing.T) {
	a := (StatusTired | StatusFired | StatusImprisoned).Labels()
	b := (StatusImprisoned | StatusTired | StatusFired).Labels()
	sort.Strings(a)
	sort.Strings(b)
	if len(a) != 3 || len(a) != len(b) {
		t.Fatalf("unexpected labels %v %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("labels differ: %v vs %v", a, b)
		}
	}
}

func TestEncodeStatus(t *testing.T) {
	mask, err := EncodeStatus("Dead", "Locked")
	if err != nil {
		t.Fatalf("EncodeStatus returned error: %v", err)
	}
	if mask != StatusDead|StatusLocked {
		t.Fatalf("unexpected mask %d", uint32(mask))
	}
	if _, err := EncodeStatus("Asleep"); err == nil {
		t.Fatalf("expected error for unknown label")
	}
	if got := mask.With(StatusDead, false); got != StatusLocked {
		t.Fatalf("With clear = %d", uint32(got))
	}
}
