package cli

import (
	"testing"
	"time"

	"hallbook/internal/constants"
	"hallbook/internal/models"
)

func TestMergeSlotFormKeepsRecurrence(t *testing.T) {
	editing := models.TimeSlot{
		ID:            "slot-1",
		HallID:        "hall-1",
		Date:          "2025-06-02",
		StartTime:     "14:00",
		EndTime:       "16:00",
		IsRecurring:   true,
		RecurringDays: []time.Weekday{time.Monday, time.Wednesday},
		RecurringPattern: &models.RecurringPattern{
			Frequency: constants.FrequencyWeekly,
			EndDate:   "2025-06-13",
		},
	}

	// Only the start time changes; the weekly pattern must survive.
	form := mergeSlotForm("hall-1", editing, "", "15:00", "")

	if form.StartTime != "15:00" || form.EndTime != "16:00" || form.Date != "2025-06-02" {
		t.Errorf("time fields merged wrong: %+v", form)
	}
	if !form.IsRecurring {
		t.Fatal("editing a time stripped the recurrence flag")
	}
	if len(form.RecurringDays) != 2 {
		t.Errorf("recurring days lost: %v", form.RecurringDays)
	}
	if form.EndDate != "2025-06-13" {
		t.Errorf("recurrence end date lost: %q", form.EndDate)
	}
}

func TestMergeSlotFormOverrides(t *testing.T) {
	editing := models.TimeSlot{
		ID:        "slot-2",
		Date:      "2025-06-02",
		StartTime: "14:00",
		EndTime:   "16:00",
	}

	tests := []struct {
		name             string
		date, start, end string
		wantDate         string
		wantStart        string
		wantEnd          string
	}{
		{"no overrides", "", "", "", "2025-06-02", "14:00", "16:00"},
		{"new date only", "2025-06-09", "", "", "2025-06-09", "14:00", "16:00"},
		{"new times", "", "09:00", "11:00", "2025-06-02", "09:00", "11:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := mergeSlotForm("hall-1", editing, tt.date, tt.start, tt.end)
			if form.Date != tt.wantDate || form.StartTime != tt.wantStart || form.EndTime != tt.wantEnd {
				t.Errorf("got %s %s-%s, want %s %s-%s",
					form.Date, form.StartTime, form.EndTime,
					tt.wantDate, tt.wantStart, tt.wantEnd)
			}
			if form.IsRecurring {
				t.Error("non-recurring slot gained a recurrence flag")
			}
		})
	}
}
