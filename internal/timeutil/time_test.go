package timeutil

import (
	"testing"
	"time"
)

func TestFormatDateUsesLocalCalendarFields(t *testing.T) {
	// 23:30 local on June 1 must render as June 1 even though the UTC
	// instant may fall on June 2.
	d := time.Date(2025, 6, 1, 23, 30, 0, 0, time.Local)
	if got := FormatDate(d); got != "2025-06-01" {
		t.Errorf("FormatDate = %q, want 2025-06-01", got)
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	dates := []string{"2025-06-01", "2024-02-29", "2025-12-31", "2025-01-01"}
	for _, s := range dates {
		parsed, err := ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", s, err)
		}
		if got := FormatDate(parsed); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}

	// Round trip is stable regardless of the local time component.
	d := time.Date(2025, 7, 10, 18, 45, 12, 0, time.Local)
	parsed, err := ParseDate(FormatDate(d))
	if err != nil {
		t.Fatal(err)
	}
	if !SameDay(parsed, d) {
		t.Errorf("round trip changed day: %v -> %v", d, parsed)
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "06/01/2025", "2025-13-01", "not-a-date"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q): expected error", s)
		}
	}
}

func TestFormatTime12(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"14:30", "2:30 PM"},
		{"00:00", "12:00 AM"},
		{"12:00", "12:00 PM"},
		{"09:05", "9:05 AM"},
		{"23:59", "11:59 PM"},
		{"", ""},
		{"garbage", ""},
	}
	for _, tc := range tests {
		if got := FormatTime12(tc.in); got != tc.want {
			t.Errorf("FormatTime12(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"full overlap", "10:00", "12:00", "10:00", "12:00", true},
		{"partial overlap", "10:00", "11:00", "10:30", "11:30", true},
		{"contained", "10:00", "14:00", "11:00", "12:00", true},
		{"touching end-to-start", "10:00", "11:00", "11:00", "12:00", false},
		{"touching start-to-end", "11:00", "12:00", "10:00", "11:00", false},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			if got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric.
			sym := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd)
			if sym != got {
				t.Errorf("Overlaps not symmetric: %v vs %v", got, sym)
			}
		})
	}
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		start, end string
		want       float64
	}{
		{"10:00", "12:00", 2},
		{"10:00", "10:30", 0.5},
		{"00:00", "23:59", 23.983333333333334},
		{"10:00", "10:00", 0},
		{"bad", "12:00", 0},
	}
	for _, tc := range tests {
		if got := DurationHours(tc.start, tc.end); got != tc.want {
			t.Errorf("DurationHours(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("mon, Wednesday,5")
	if err != nil {
		t.Fatal(err)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weekday %d = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := ParseWeekdays("mon,funday"); err == nil {
		t.Error("expected error for invalid weekday name")
	}
	if _, err := ParseWeekdays("7"); err == nil {
		t.Error("expected error for out-of-range weekday number")
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	min, err := ParseTimeToMinutes("14:30")
	if err != nil {
		t.Fatal(err)
	}
	if min != 14*60+30 {
		t.Errorf("got %d, want %d", min, 14*60+30)
	}
	if _, err := ParseTimeToMinutes("25:00"); err == nil {
		t.Error("expected error for invalid time")
	}
}
