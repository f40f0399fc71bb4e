package validation

import (
	"errors"
	"testing"
	"time"

	"hallbook/internal/constants"
	"hallbook/internal/models"
)

func conflictType(t *testing.T, err error) ConflictType {
	t.Helper()
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %T (%v)", err, err)
	}
	return conflict.Type
}

func TestValidateSlotMissingFields(t *testing.T) {
	v := New()
	forms := []SlotForm{
		{StartTime: "10:00", EndTime: "11:00"},
		{Date: "2025-06-01", EndTime: "11:00"},
		{Date: "2025-06-01", StartTime: "10:00"},
	}
	for _, form := range forms {
		_, err := v.ValidateSlot(form, nil, nil, nil)
		if got := conflictType(t, err); got != ConflictMissingFields {
			t.Errorf("form %+v: conflict type = %s, want %s", form, got, ConflictMissingFields)
		}
	}
}

func TestValidateSlotTimeOrder(t *testing.T) {
	v := New()
	form := SlotForm{Date: "2025-06-01", StartTime: "10:00", EndTime: "09:00"}
	_, err := v.ValidateSlot(form, nil, nil, nil)
	if got := conflictType(t, err); got != ConflictInvalidTimeOrder {
		t.Errorf("conflict type = %s, want %s", got, ConflictInvalidTimeOrder)
	}

	// Equal start/end is rejected too.
	form.EndTime = "10:00"
	_, err = v.ValidateSlot(form, nil, nil, nil)
	if got := conflictType(t, err); got != ConflictInvalidTimeOrder {
		t.Errorf("equal times: conflict type = %s, want %s", got, ConflictInvalidTimeOrder)
	}
}

func TestValidateSlotRecurrenceFields(t *testing.T) {
	v := New()
	form := SlotForm{
		Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00",
		IsRecurring: true,
	}
	_, err := v.ValidateSlot(form, nil, nil, nil)
	if got := conflictType(t, err); got != ConflictMissingRecurrence {
		t.Errorf("conflict type = %s, want %s", got, ConflictMissingRecurrence)
	}

	form.EndDate = "2025-06-30"
	_, err = v.ValidateSlot(form, nil, nil, nil)
	if got := conflictType(t, err); got != ConflictMissingRecurrence {
		t.Errorf("no weekdays: conflict type = %s, want %s", got, ConflictMissingRecurrence)
	}

	form.RecurringDays = []time.Weekday{time.Monday}
	slot, err := v.ValidateSlot(form, nil, nil, nil)
	if err != nil {
		t.Fatalf("valid recurring form rejected: %v", err)
	}
	if slot.RecurringPattern == nil || slot.RecurringPattern.EndDate != "2025-06-30" {
		t.Errorf("pattern not normalized: %+v", slot.RecurringPattern)
	}
}

func TestValidateSlotConflictAgainstSlots(t *testing.T) {
	v := New()
	existing := []models.TimeSlot{{
		ID: "s1", Date: "2025-06-01", StartTime: "10:30", EndTime: "11:30",
		Status: constants.SlotStatusAvailable, IsAvailabilitySlot: true,
	}}

	form := SlotForm{Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"}
	_, err := v.ValidateSlot(form, existing, nil, nil)
	if got := conflictType(t, err); got != ConflictSlotOverlap {
		t.Errorf("conflict type = %s, want %s", got, ConflictSlotOverlap)
	}

	// Touching boundary is not a conflict.
	form = SlotForm{Date: "2025-06-01", StartTime: "11:30", EndTime: "12:30"}
	if _, err := v.ValidateSlot(form, existing, nil, nil); err != nil {
		t.Errorf("touching boundary rejected: %v", err)
	}

	// Same time on a different date is not a conflict.
	form = SlotForm{Date: "2025-06-02", StartTime: "10:00", EndTime: "11:00"}
	if _, err := v.ValidateSlot(form, existing, nil, nil); err != nil {
		t.Errorf("different date rejected: %v", err)
	}
}

func TestValidateSlotExcludesSlotBeingEdited(t *testing.T) {
	v := New()
	editing := models.TimeSlot{
		ID: "s1", Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00",
	}
	existing := []models.TimeSlot{editing}

	// Extending the edited slot overlaps only itself, which must not count.
	form := SlotForm{Date: "2025-06-01", StartTime: "10:00", EndTime: "12:00"}
	slot, err := v.ValidateSlot(form, existing, nil, &editing)
	if err != nil {
		t.Fatalf("self-conflict not excluded: %v", err)
	}
	if slot.ID != "s1" {
		t.Errorf("edited slot ID not preserved: %q", slot.ID)
	}
}

func TestValidateSlotConflictAgainstBookings(t *testing.T) {
	v := New()
	bookings := []models.Booking{
		{ID: "b1", BookingDate: "2025-06-01", StartTime: "14:00", EndTime: "16:00", Status: constants.BookingConfirmed},
		{ID: "b2", BookingDate: "2025-06-01", StartTime: "09:00", EndTime: "10:00", Status: constants.BookingCancelled},
	}

	form := SlotForm{Date: "2025-06-01", StartTime: "15:00", EndTime: "17:00"}
	_, err := v.ValidateSlot(form, nil, bookings, nil)
	if got := conflictType(t, err); got != ConflictBookingOverlap {
		t.Errorf("conflict type = %s, want %s", got, ConflictBookingOverlap)
	}

	// Cancelled bookings never block.
	form = SlotForm{Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00"}
	if _, err := v.ValidateSlot(form, nil, bookings, nil); err != nil {
		t.Errorf("cancelled booking blocked a slot: %v", err)
	}
}

func TestValidateSlotNormalization(t *testing.T) {
	v := New()
	form := SlotForm{HallID: "h1", Date: "2025-07-10", StartTime: "14:00", EndTime: "16:00"}
	slot, err := v.ValidateSlot(form, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if slot.DurationHours != 2 {
		t.Errorf("DurationHours = %v, want 2", slot.DurationHours)
	}
	if slot.Status != constants.SlotStatusAvailable || !slot.IsAvailabilitySlot {
		t.Errorf("slot not normalized as availability: %+v", slot)
	}
	if slot.ID == "" {
		t.Error("new slot did not get an ID")
	}
	if slot.HallID != "h1" {
		t.Errorf("HallID = %q", slot.HallID)
	}
}

func TestPreviewOccurrencesWeekly(t *testing.T) {
	form := SlotForm{
		Date: "2025-06-02", StartTime: "10:00", EndTime: "11:00",
		IsRecurring:   true,
		RecurringDays: []time.Weekday{time.Monday, time.Wednesday},
		EndDate:       "2025-06-13",
	}
	dates, err := PreviewOccurrences(form)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2025-06-02", "2025-06-04", "2025-06-09", "2025-06-11"}
	if len(dates) != len(want) {
		t.Fatalf("got %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("occurrence %d = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestPreviewOccurrencesNonRecurring(t *testing.T) {
	dates, err := PreviewOccurrences(SlotForm{Date: "2025-06-02"})
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 1 || dates[0] != "2025-06-02" {
		t.Errorf("got %v", dates)
	}
}

func TestPreviewOccurrencesEndBeforeStart(t *testing.T) {
	form := SlotForm{
		Date: "2025-06-13", IsRecurring: true,
		RecurringDays: []time.Weekday{time.Monday},
		EndDate:       "2025-06-02",
	}
	if _, err := PreviewOccurrences(form); err == nil {
		t.Error("expected error for end date before start date")
	}
}
