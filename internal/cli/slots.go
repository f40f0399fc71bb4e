package cli

import (
	"fmt"

	"hallbook/internal/constants"
	"hallbook/internal/models"
	"hallbook/internal/validation"
)

// SlotListCmd lists a hall's availability slots, optionally scoped to a date.
type SlotListCmd struct {
	Hall string `short:"H" help:"Hall ID. Defaults to the selected hall."`
	Date string `short:"d" help:"Only show slots on this date (YYYY-MM-DD)."`
}

func (cmd *SlotListCmd) Run(ctx *Context) error {
	hallID, err := ctx.ResolveHall(cmd.Hall)
	if err != nil {
		return err
	}
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}

	reqCtx, cancel := CommandContext()
	defer cancel()
	slots := repo.LoadSlots(reqCtx, hallID)

	shown := 0
	for _, slot := range slots {
		if cmd.Date != "" && slot.Date != cmd.Date {
			continue
		}
		fmt.Println(FormatSlotLine(slot))
		shown++
	}
	if shown == 0 {
		fmt.Println("No availability slots.")
	}
	return nil
}

// SlotAddCmd creates a new availability slot after validating it against
// the hall's existing slots and bookings.
type SlotAddCmd struct {
	Hall     string `short:"H" help:"Hall ID. Defaults to the selected hall."`
	Date     string `short:"d" help:"Slot date (YYYY-MM-DD)." required:""`
	Start    string `short:"s" help:"Start time (HH:MM)." required:""`
	End      string `short:"e" help:"End time (HH:MM)." required:""`
	Weekly   bool   `help:"Repeat weekly on the given weekdays."`
	Weekdays string `short:"w" help:"Comma-separated weekdays for weekly repetition."`
	Until    string `help:"Last date of the weekly repetition (YYYY-MM-DD)."`
	Preview  bool   `short:"p" help:"Show the dates a recurring slot expands to without creating it."`
}

func (cmd *SlotAddCmd) buildForm(ctx *Context) (validation.SlotForm, error) {
	hallID, err := ctx.ResolveHall(cmd.Hall)
	if err != nil {
		return validation.SlotForm{}, err
	}
	form := validation.SlotForm{
		HallID:      hallID,
		Date:        cmd.Date,
		StartTime:   cmd.Start,
		EndTime:     cmd.End,
		IsRecurring: cmd.Weekly,
		EndDate:     cmd.Until,
	}
	if cmd.Weekly {
		days, err := ParseWeekdaysFlag(cmd.Weekdays)
		if err != nil {
			return validation.SlotForm{}, err
		}
		form.RecurringDays = days
	}
	return form, nil
}

func (cmd *SlotAddCmd) Run(ctx *Context) error {
	form, err := cmd.buildForm(ctx)
	if err != nil {
		return err
	}

	if cmd.Preview {
		dates, err := validation.PreviewOccurrences(form)
		if err != nil {
			return err
		}
		fmt.Printf("This pattern creates %d slot(s):\n", len(dates))
		for _, d := range dates {
			fmt.Printf("  %s  %s - %s\n", d, cmd.Start, cmd.End)
		}
		return nil
	}

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	reqCtx, cancel := CommandContext()
	defer cancel()

	slots := repo.LoadSlots(reqCtx, form.HallID)
	bookings := repo.LoadBookings(reqCtx, form.HallID)

	slot, err := validation.New().ValidateSlot(form, slots, bookings, nil)
	if err != nil {
		return err
	}

	client, err := ctx.Client()
	if err != nil {
		return err
	}
	created, err := client.CreateSlot(reqCtx, slot)
	if err != nil {
		return ctx.HandleAPIError(err)
	}
	fmt.Printf("Created slot %s: %s\n", created.ID, FormatRecurrence(created))
	return nil
}

// mergeSlotForm rebuilds the form for an edit: every field starts from the
// existing slot, recurrence included, and only the given overrides replace
// it. Editing a time must not strip a slot's recurrence.
func mergeSlotForm(hallID string, editing models.TimeSlot, date, start, end string) validation.SlotForm {
	form := validation.SlotForm{
		HallID:        hallID,
		Date:          editing.Date,
		StartTime:     editing.StartTime,
		EndTime:       editing.EndTime,
		IsRecurring:   editing.IsRecurring,
		RecurringDays: editing.RecurringDays,
	}
	if editing.RecurringPattern != nil {
		form.EndDate = editing.RecurringPattern.EndDate
	}
	if date != "" {
		form.Date = date
	}
	if start != "" {
		form.StartTime = start
	}
	if end != "" {
		form.EndTime = end
	}
	return form
}

// SlotEditCmd updates an existing availability slot.
type SlotEditCmd struct {
	ID    string `arg:"" help:"Slot ID to edit."`
	Hall  string `short:"H" help:"Hall ID. Defaults to the selected hall."`
	Date  string `short:"d" help:"New date (YYYY-MM-DD)."`
	Start string `short:"s" help:"New start time (HH:MM)."`
	End   string `short:"e" help:"New end time (HH:MM)."`
}

func (cmd *SlotEditCmd) Run(ctx *Context) error {
	hallID, err := ctx.ResolveHall(cmd.Hall)
	if err != nil {
		return err
	}
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}

	reqCtx, cancel := CommandContext()
	defer cancel()
	slots := repo.LoadSlots(reqCtx, hallID)
	bookings := repo.LoadBookings(reqCtx, hallID)

	var editing *models.TimeSlot
	for i := range slots {
		if slots[i].ID == cmd.ID {
			editing = &slots[i]
			break
		}
	}
	if editing == nil {
		return fmt.Errorf("slot %q not found in hall %s", cmd.ID, hallID)
	}

	form := mergeSlotForm(hallID, *editing, cmd.Date, cmd.Start, cmd.End)

	slot, err := validation.New().ValidateSlot(form, slots, bookings, editing)
	if err != nil {
		return err
	}

	client, err := ctx.Client()
	if err != nil {
		return err
	}
	updated, err := client.UpdateSlot(reqCtx, cmd.ID, slot)
	if err != nil {
		return ctx.HandleAPIError(err)
	}
	fmt.Printf("Updated slot %s: %s %s - %s\n", updated.ID, updated.Date, updated.StartTime, updated.EndTime)
	return nil
}

// SlotDeleteCmd deletes an availability slot (or cancels a booking record
// occupying it; the backend decides and reports which).
type SlotDeleteCmd struct {
	ID string `arg:"" help:"Slot ID to delete."`
}

func (cmd *SlotDeleteCmd) Run(ctx *Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	reqCtx, cancel := CommandContext()
	defer cancel()
	rec, err := client.DeleteSlot(reqCtx, cmd.ID)
	if err != nil {
		return ctx.HandleAPIError(err)
	}
	if rec.Type == constants.DeleteTypeAvailabilitySlot {
		fmt.Println("Availability slot deleted.")
	} else {
		fmt.Println("Booking cancelled and removed.")
	}
	return nil
}
