package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hallbook/internal/constants"
)

// FormatDate renders a date as YYYY-MM-DD using its local calendar fields.
// Formatting the wall-clock fields directly (instead of normalizing to UTC)
// keeps the rendered day stable across timezones.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into a local-midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of
// minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatTime12 converts a 24-hour "HH:MM" string to a 12-hour clock string
// (e.g. "14:30" -> "2:30 PM"). Empty input yields an empty string, as do
// unparseable values.
func FormatTime12(time24 string) string {
	if time24 == "" {
		return ""
	}
	t, err := ParseTime(time24)
	if err != nil {
		return ""
	}
	return t.Format(constants.Clock12Format)
}

// Overlaps reports whether two half-open [start, end) intervals on the same
// day intersect. Touching endpoints do not count as overlap. HH:MM strings
// compare correctly lexicographically, so no parsing is needed.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// DurationHours returns end minus start in fractional hours. Only the
// time-of-day matters; both values are anchored to the same reference date
// by the HH:MM parse. Returns 0 for unparseable input.
func DurationHours(start, end string) float64 {
	s, err := ParseTime(start)
	if err != nil {
		return 0
	}
	e, err := ParseTime(end)
	if err != nil {
		return 0
	}
	return e.Sub(s).Hours()
}

// Midnight truncates a time to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

var dayMap = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekdays parses a comma-separated list of weekdays. Names (full or
// three-letter) and numbers (0=Sunday, 6=Saturday) are both accepted.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err == nil && num >= 0 && num <= 6 {
			weekdays = append(weekdays, time.Weekday(num))
		} else {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
	}

	return weekdays, nil
}

// FormatWeekdays renders a weekday set as comma-joined three-letter names.
func FormatWeekdays(days []time.Weekday) string {
	var names []string
	for _, wd := range days {
		names = append(names, wd.String()[:3])
	}
	return strings.Join(names, ",")
}

// ContainsWeekday reports whether the weekday set includes wd.
func ContainsWeekday(days []time.Weekday, wd time.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}
