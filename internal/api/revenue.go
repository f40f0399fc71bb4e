package api

import (
	"context"
	"time"

	"hallbook/internal/constants"
	"hallbook/internal/logger"
	"hallbook/internal/models"
	"hallbook/internal/timeutil"
)

// Revenue returns the owner's revenue summary. When the aggregate endpoint
// fails it falls back to computing the summary client-side from the owner's
// allotment list, so the earnings view degrades instead of going blank.
func (c *Client) Revenue(ctx context.Context) (models.RevenueSummary, error) {
	summary, err := c.TotalRevenue(ctx)
	if err == nil {
		return summary, nil
	}
	logger.Warn("Revenue aggregate unavailable, computing from allotments", "error", err)

	allotments, fallbackErr := c.MyAllotments(ctx)
	if fallbackErr != nil {
		// Report the original failure; the fallback failing too adds nothing.
		return models.RevenueSummary{}, err
	}
	return SummarizeRevenue(allotments, time.Now()), nil
}

// SummarizeRevenue aggregates completed bookings into a revenue summary.
// Monthly revenue counts completions dated within now's calendar month.
func SummarizeRevenue(bookings []models.Booking, now time.Time) models.RevenueSummary {
	var summary models.RevenueSummary
	for _, b := range bookings {
		if b.Status != constants.BookingCompleted {
			continue
		}
		summary.CompletedBookings++
		summary.TotalRevenue += b.TotalAmount

		date, err := timeutil.ParseDate(b.Date())
		if err != nil {
			continue
		}
		if date.Year() == now.Year() && date.Month() == now.Month() {
			summary.MonthlyRevenue += b.TotalAmount
		}
	}
	return summary
}
