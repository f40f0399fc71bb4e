// Package handlers builds the huh forms the dashboard opens for slot
// editing and hall selection. Form models hold raw string input; conflict
// checking against the cached lists happens after submission, in the
// validation package.
package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"hallbook/internal/constants"
	"hallbook/internal/models"
)

type SlotFormModel struct {
	Date      string
	StartTime string
	EndTime   string
	Recurring bool
	Weekdays  []time.Weekday
	EndDate   string
}

type HallFormModel struct {
	HallID string
}

func validDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func validTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("time is required")
	}
	if _, err := time.Parse(constants.TimeFormat, s); err != nil {
		return fmt.Errorf("expected HH:MM (24-hour)")
	}
	return nil
}

// NewSlotForm creates the availability-slot form. The recurrence group only
// shows when the recurring toggle is on.
func NewSlotForm(fm *SlotFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&fm.Date).
				Validate(validDate),
			huh.NewInput().
				Title("Start time").
				Description("HH:MM, 24-hour").
				Value(&fm.StartTime).
				Validate(validTime),
			huh.NewInput().
				Title("End time").
				Description("HH:MM, 24-hour").
				Value(&fm.EndTime).
				Validate(validTime),
			huh.NewConfirm().
				Title("Repeat weekly?").
				Value(&fm.Recurring),
		),
		huh.NewGroup(
			huh.NewMultiSelect[time.Weekday]().
				Title("Repeat on").
				Options(
					huh.NewOption("Sunday", time.Sunday),
					huh.NewOption("Monday", time.Monday),
					huh.NewOption("Tuesday", time.Tuesday),
					huh.NewOption("Wednesday", time.Wednesday),
					huh.NewOption("Thursday", time.Thursday),
					huh.NewOption("Friday", time.Friday),
					huh.NewOption("Saturday", time.Saturday),
				).
				Value(&fm.Weekdays),
			huh.NewInput().
				Title("Repeat until").
				Description("YYYY-MM-DD").
				Value(&fm.EndDate).
				Validate(validDate),
		).WithHideFunc(func() bool {
			return !fm.Recurring
		}),
	).WithTheme(huh.ThemeDracula())
}

// NewHallPickerForm creates the hall selection form from the owner's halls.
func NewHallPickerForm(fm *HallFormModel, halls []models.Hall) *huh.Form {
	options := make([]huh.Option[string], len(halls))
	for i, h := range halls {
		label := h.Name
		if h.Location != "" {
			label = fmt.Sprintf("%s (%s)", h.Name, h.Location)
		}
		options[i] = huh.NewOption(label, h.ID)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a hall").
				Options(options...).
				Value(&fm.HallID),
		),
	).WithTheme(huh.ThemeDracula())
}
