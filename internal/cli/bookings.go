package cli

import (
	"fmt"

	"hallbook/internal/constants"
	"hallbook/internal/logger"
	"hallbook/internal/models"
)

// BookingListCmd lists bookings, for one hall or across all of them.
type BookingListCmd struct {
	Hall   string `short:"H" help:"Limit to one hall. Defaults to all halls."`
	Status string `short:"s" help:"Filter by status (pending|confirmed|cancelled|completed)."`
}

func (cmd *BookingListCmd) Run(ctx *Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	reqCtx, cancel := CommandContext()
	defer cancel()

	var bookings []models.Booking
	if cmd.Hall != "" {
		bookings, err = client.ListHallBookings(reqCtx, cmd.Hall)
	} else {
		bookings, err = client.ListBookings(reqCtx)
	}
	if err != nil {
		return ctx.HandleAPIError(err)
	}

	var statusFilter constants.BookingStatus
	if cmd.Status != "" {
		statusFilter, err = ParseBookingStatus(cmd.Status)
		if err != nil {
			return err
		}
	}

	shown := 0
	for _, b := range bookings {
		if statusFilter != "" && b.Status != statusFilter {
			continue
		}
		fmt.Println(FormatBookingLine(b))
		shown++
	}
	if shown == 0 {
		fmt.Println("No bookings.")
	}
	return nil
}

// BookingStatusCmd transitions a booking to a new status. Completing a
// booking additionally records it for revenue aggregation.
type BookingStatusCmd struct {
	ID     string `arg:"" help:"Booking ID."`
	Status string `arg:"" help:"New status (confirmed|cancelled|completed)."`
}

func (cmd *BookingStatusCmd) Run(ctx *Context) error {
	status, err := ParseBookingStatus(cmd.Status)
	if err != nil {
		return err
	}

	client, err := ctx.Client()
	if err != nil {
		return err
	}
	reqCtx, cancel := CommandContext()
	defer cancel()

	if err := client.UpdateBookingStatus(reqCtx, cmd.ID, status); err != nil {
		return ctx.HandleAPIError(err)
	}

	if status == constants.BookingCompleted {
		// Revenue recording is best-effort; the status change already
		// happened and the backend reconciles on its side.
		if err := client.CompleteBooking(reqCtx, cmd.ID); err != nil {
			logger.Warn("Failed to record completed booking for revenue", "booking", cmd.ID, "error", err)
		}
	}

	fmt.Printf("Booking %s is now %s.\n", cmd.ID, status)
	return nil
}
