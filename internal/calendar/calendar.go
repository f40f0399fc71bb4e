// Package calendar derives the grid of dates and per-day availability state
// rendered by the slot management views. It treats availability slots and
// bookings as one set of time-ranged records per day, distinguished only for
// display classification.
package calendar

import (
	"time"

	"hallbook/internal/constants"
	"hallbook/internal/models"
	"hallbook/internal/timeutil"
)

// Day is one cell of the month grid.
type Day struct {
	Date       time.Time
	OtherMonth bool
}

// DayState classifies a date for rendering and selection.
type DayState struct {
	IsToday     bool
	IsSelected  bool
	IsPast      bool
	FullyBooked bool
}

// Selectable reports whether the date may be chosen for a new slot. Past
// and fully-booked dates are rejected with a notice instead.
func (s DayState) Selectable() bool {
	return !s.IsPast && !s.FullyBooked
}

// Engine holds the calendar widget's navigation state: the reference date
// the views pivot on and the current view granularity.
type Engine struct {
	Reference time.Time
	View      constants.ViewMode
}

// NewEngine creates an Engine in month view anchored on ref.
func NewEngine(ref time.Time) *Engine {
	return &Engine{Reference: ref, View: constants.ViewMonth}
}

// Advance shifts the reference date one unit in the given direction (+1 or
// -1); the unit follows the current view mode.
func (e *Engine) Advance(direction int) {
	switch e.View {
	case constants.ViewMonth:
		e.Reference = e.Reference.AddDate(0, direction, 0)
	case constants.ViewWeek:
		e.Reference = e.Reference.AddDate(0, 0, 7*direction)
	case constants.ViewDay:
		e.Reference = e.Reference.AddDate(0, 0, direction)
	}
}

// MonthGrid returns the 42 consecutive days (6 full weeks) shown for the
// reference date's month, starting from the Sunday on or before the 1st.
// Leading and trailing days from adjacent months are flagged OtherMonth.
func MonthGrid(ref time.Time) []Day {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	grid := make([]Day, 0, 42)
	for i := 0; i < 42; i++ {
		day := start.AddDate(0, 0, i)
		grid = append(grid, Day{
			Date:       day,
			OtherMonth: day.Month() != ref.Month(),
		})
	}
	return grid
}

// WeekDates returns the Sunday-through-Saturday week containing ref.
func WeekDates(ref time.Time) [7]time.Time {
	sunday := timeutil.Midnight(ref).AddDate(0, 0, -int(ref.Weekday()))
	var week [7]time.Time
	for i := range week {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}

// SlotsOn filters slots to those on the given calendar date.
func SlotsOn(date time.Time, slots []models.TimeSlot) []models.TimeSlot {
	key := timeutil.FormatDate(date)
	var out []models.TimeSlot
	for _, slot := range slots {
		if slot.Date == key {
			out = append(out, slot)
		}
	}
	return out
}

// BookingsOn filters bookings to those on the given calendar date.
func BookingsOn(date time.Time, bookings []models.Booking) []models.Booking {
	key := timeutil.FormatDate(date)
	var out []models.Booking
	for _, booking := range bookings {
		if booking.Date() == key {
			out = append(out, booking)
		}
	}
	return out
}

// PartitionSlots splits a date's slots into open availability and everything
// else. The discriminator drives color-coding only.
func PartitionSlots(slots []models.TimeSlot) (available, occupied []models.TimeSlot) {
	for _, slot := range slots {
		if slot.IsAvailable() {
			available = append(available, slot)
		} else {
			occupied = append(occupied, slot)
		}
	}
	return available, occupied
}

// HasAvailableCapacity reports whether a date still has bookable time. A
// date with no records at all has capacity; otherwise capacity remains while
// the summed durations of its slots and bookings stay under 24 hours.
//
// This heuristic sums durations without checking interval placement, so
// overlapping or gapped records can mis-estimate true availability. The
// behavior is kept deliberately; see DESIGN.md.
func HasAvailableCapacity(slots []models.TimeSlot, bookings []models.Booking) bool {
	if len(slots) == 0 && len(bookings) == 0 {
		return true
	}
	var total float64
	for _, slot := range slots {
		total += timeutil.DurationHours(slot.StartTime, slot.EndTime)
	}
	for _, booking := range bookings {
		// Cancelled bookings occupy no time.
		if !booking.Blocks() {
			continue
		}
		total += timeutil.DurationHours(booking.StartTime, booking.EndTime)
	}
	return total < constants.FullDayHours
}

// Classify computes the rendering state of a single date. slots and
// bookings must already be filtered to that date.
func Classify(date, today, selected time.Time, slots []models.TimeSlot, bookings []models.Booking) DayState {
	return DayState{
		IsToday:     timeutil.SameDay(date, today),
		IsSelected:  !selected.IsZero() && timeutil.SameDay(date, selected),
		IsPast:      timeutil.Midnight(date).Before(timeutil.Midnight(today)),
		FullyBooked: !HasAvailableCapacity(slots, bookings),
	}
}

// coversHour reports whether an HH:MM interval intersects the hour-long
// window starting at hour.
func coversHour(start, end string, hour int) bool {
	startMin, err := timeutil.ParseTimeToMinutes(start)
	if err != nil {
		return false
	}
	endMin, err := timeutil.ParseTimeToMinutes(end)
	if err != nil {
		return false
	}
	return startMin < (hour+1)*60 && endMin > hour*60
}

// SlotsInHour filters a date's slots to those intersecting the given hour,
// for the week and day hour-row views.
func SlotsInHour(slots []models.TimeSlot, hour int) []models.TimeSlot {
	var out []models.TimeSlot
	for _, slot := range slots {
		if coversHour(slot.StartTime, slot.EndTime, hour) {
			out = append(out, slot)
		}
	}
	return out
}

// BookingsInHour filters a date's bookings to those intersecting the given hour.
func BookingsInHour(bookings []models.Booking, hour int) []models.Booking {
	var out []models.Booking
	for _, booking := range bookings {
		if coversHour(booking.StartTime, booking.EndTime, hour) {
			out = append(out, booking)
		}
	}
	return out
}
