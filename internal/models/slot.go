package models

import (
	"fmt"
	"time"

	"hallbook/internal/constants"
)

// RecurringPattern describes how a recurring availability slot repeats.
// Expansion into concrete dates happens on the backend; the client only
// collects and previews the pattern.
type RecurringPattern struct {
	Frequency constants.RecurrenceFrequency `json:"frequency"`
	EndDate   string                        `json:"endDate"` // YYYY-MM-DD
}

// TimeSlot is an owner-declared window during which a hall may be booked.
type TimeSlot struct {
	ID                 string            `json:"id"`
	HallID             string            `json:"hallId"`
	Date               string            `json:"date"`      // YYYY-MM-DD
	StartTime          string            `json:"startTime"` // HH:MM
	EndTime            string            `json:"endTime"`   // HH:MM
	DurationHours      float64           `json:"duration"`
	IsRecurring        bool              `json:"isRecurring"`
	RecurringPattern   *RecurringPattern `json:"recurringPattern,omitempty"`
	RecurringDays      []time.Weekday    `json:"recurringDays,omitempty"`
	Status             string            `json:"status"`
	IsAvailabilitySlot bool              `json:"isAvailabilitySlot"`
}

// Validate checks the structural invariants of a slot. Temporal conflicts
// against other slots and bookings are the validation package's job.
func (s *TimeSlot) Validate() error {
	if s.Date == "" || s.StartTime == "" || s.EndTime == "" {
		return fmt.Errorf("date, start time, and end time are required")
	}
	if _, err := time.Parse(constants.DateFormat, s.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if _, err := time.Parse(constants.TimeFormat, s.StartTime); err != nil {
		return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
	}
	if _, err := time.Parse(constants.TimeFormat, s.EndTime); err != nil {
		return fmt.Errorf("invalid end time format (expected HH:MM): %w", err)
	}
	if s.StartTime >= s.EndTime {
		return fmt.Errorf("start time must be before end time")
	}
	if s.IsRecurring {
		if s.RecurringPattern == nil || s.RecurringPattern.EndDate == "" {
			return fmt.Errorf("recurring slots require an end date")
		}
		if len(s.RecurringDays) == 0 {
			return fmt.Errorf("recurring slots require at least one weekday")
		}
	}
	return nil
}

// IsAvailable reports whether this slot should render as open availability
// rather than occupied time.
func (s *TimeSlot) IsAvailable() bool {
	return s.Status == constants.SlotStatusAvailable && s.IsAvailabilitySlot
}
