package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"hallbook/internal/constants"
	"hallbook/internal/models"
	"hallbook/internal/timeutil"
)

// ConflictType classifies why a proposed slot was rejected.
type ConflictType string

const (
	ConflictMissingFields     ConflictType = "missing_fields"
	ConflictInvalidTimeOrder  ConflictType = "invalid_time_order"
	ConflictMissingRecurrence ConflictType = "missing_recurrence"
	ConflictSlotOverlap       ConflictType = "slot_overlap"
	ConflictBookingOverlap    ConflictType = "booking_overlap"
	ConflictInvalidFormat     ConflictType = "invalid_format"
)

// ConflictError is a single validation failure. Validation stops at the
// first conflict found, so the user sees one most-relevant notice.
type ConflictError struct {
	Type    ConflictType
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// SlotForm is a proposed new or edited availability slot as collected from
// the slot form, before normalization.
type SlotForm struct {
	HallID        string
	Date          string // YYYY-MM-DD
	StartTime     string // HH:MM
	EndTime       string // HH:MM
	IsRecurring   bool
	RecurringDays []time.Weekday
	EndDate       string // YYYY-MM-DD, required when IsRecurring
}

// Validator checks proposed slots against the current slot and booking
// lists. It is pure: submission and list refresh belong to the caller.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateSlot validates a proposed slot and, when it passes, returns the
// normalized TimeSlot ready for submission. editing, when non-nil, is the
// slot being edited and is excluded from self-comparison by ID.
func (v *Validator) ValidateSlot(form SlotForm, slots []models.TimeSlot, bookings []models.Booking, editing *models.TimeSlot) (models.TimeSlot, error) {
	if form.Date == "" || form.StartTime == "" || form.EndTime == "" {
		return models.TimeSlot{}, &ConflictError{
			Type:    ConflictMissingFields,
			Message: "date, start time, and end time are required",
		}
	}

	if _, err := timeutil.ParseDate(form.Date); err != nil {
		return models.TimeSlot{}, &ConflictError{
			Type:    ConflictInvalidFormat,
			Message: fmt.Sprintf("invalid date: %s", form.Date),
		}
	}
	if _, err := timeutil.ParseTime(form.StartTime); err != nil {
		return models.TimeSlot{}, &ConflictError{
			Type:    ConflictInvalidFormat,
			Message: fmt.Sprintf("invalid start time: %s", form.StartTime),
		}
	}
	if _, err := timeutil.ParseTime(form.EndTime); err != nil {
		return models.TimeSlot{}, &ConflictError{
			Type:    ConflictInvalidFormat,
			Message: fmt.Sprintf("invalid end time: %s", form.EndTime),
		}
	}

	if form.StartTime >= form.EndTime {
		return models.TimeSlot{}, &ConflictError{
			Type:    ConflictInvalidTimeOrder,
			Message: "start time must be before end time",
		}
	}

	if form.IsRecurring {
		if form.EndDate == "" || len(form.RecurringDays) == 0 {
			return models.TimeSlot{}, &ConflictError{
				Type:    ConflictMissingRecurrence,
				Message: "recurring slots require an end date and at least one weekday",
			}
		}
		if _, err := timeutil.ParseDate(form.EndDate); err != nil {
			return models.TimeSlot{}, &ConflictError{
				Type:    ConflictInvalidFormat,
				Message: fmt.Sprintf("invalid recurrence end date: %s", form.EndDate),
			}
		}
	}

	for _, slot := range slots {
		if editing != nil && slot.ID == editing.ID {
			continue
		}
		if slot.Date != form.Date {
			continue
		}
		if timeutil.Overlaps(form.StartTime, form.EndTime, slot.StartTime, slot.EndTime) {
			return models.TimeSlot{}, &ConflictError{
				Type: ConflictSlotOverlap,
				Message: fmt.Sprintf("slot already exists: %s - %s",
					timeutil.FormatTime12(slot.StartTime), timeutil.FormatTime12(slot.EndTime)),
			}
		}
	}

	for _, booking := range bookings {
		if !booking.Blocks() {
			continue
		}
		if booking.Date() != form.Date {
			continue
		}
		if timeutil.Overlaps(form.StartTime, form.EndTime, booking.StartTime, booking.EndTime) {
			return models.TimeSlot{}, &ConflictError{
				Type: ConflictBookingOverlap,
				Message: fmt.Sprintf("time slot already booked: %s - %s",
					timeutil.FormatTime12(booking.StartTime), timeutil.FormatTime12(booking.EndTime)),
			}
		}
	}

	slot := models.TimeSlot{
		HallID:             form.HallID,
		Date:               form.Date,
		StartTime:          form.StartTime,
		EndTime:            form.EndTime,
		DurationHours:      timeutil.DurationHours(form.StartTime, form.EndTime),
		IsRecurring:        form.IsRecurring,
		Status:             constants.SlotStatusAvailable,
		IsAvailabilitySlot: true,
	}
	if editing != nil {
		slot.ID = editing.ID
	} else {
		slot.ID = uuid.New().String()
	}
	if form.IsRecurring {
		slot.RecurringPattern = &models.RecurringPattern{
			Frequency: constants.FrequencyWeekly,
			EndDate:   form.EndDate,
		}
		slot.RecurringDays = form.RecurringDays
	}
	return slot, nil
}
