package validation

import (
	"fmt"

	"hallbook/internal/timeutil"
)

// maxPreviewOccurrences caps local expansion; the backend owns the real
// expansion and its own limits.
const maxPreviewOccurrences = 366

// PreviewOccurrences expands a recurring slot form into the concrete dates
// the backend will create: every day from the form's date through its end
// date (inclusive) whose weekday is in the recurring-day set. The client
// uses this only to show the owner what a pattern means before submitting.
func PreviewOccurrences(form SlotForm) ([]string, error) {
	if !form.IsRecurring {
		return []string{form.Date}, nil
	}
	if form.EndDate == "" || len(form.RecurringDays) == 0 {
		return nil, &ConflictError{
			Type:    ConflictMissingRecurrence,
			Message: "recurring slots require an end date and at least one weekday",
		}
	}

	start, err := timeutil.ParseDate(form.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := timeutil.ParseDate(form.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return nil, &ConflictError{
			Type:    ConflictInvalidTimeOrder,
			Message: "recurrence end date must not precede the start date",
		}
	}

	var dates []string
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if timeutil.ContainsWeekday(form.RecurringDays, day.Weekday()) {
			dates = append(dates, timeutil.FormatDate(day))
		}
		if len(dates) >= maxPreviewOccurrences {
			break
		}
	}
	return dates, nil
}
