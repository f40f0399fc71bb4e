package cli

import (
	"fmt"
)

// RevenueCmd prints the owner's earnings summary.
type RevenueCmd struct{}

func (cmd *RevenueCmd) Run(ctx *Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	reqCtx, cancel := CommandContext()
	defer cancel()
	summary, err := client.Revenue(reqCtx)
	if err != nil {
		return ctx.HandleAPIError(err)
	}

	fmt.Printf("Total revenue:      %12.2f\n", summary.TotalRevenue)
	fmt.Printf("This month:         %12.2f\n", summary.MonthlyRevenue)
	fmt.Printf("Completed bookings: %12d\n", summary.CompletedBookings)
	return nil
}
