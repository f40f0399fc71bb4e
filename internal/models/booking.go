package models

import (
	"hallbook/internal/constants"
)

// Booking is a customer's reservation of a hall for a date/time range.
// Bookings are created and mutated on the backend; the client only reads
// them and requests status transitions.
type Booking struct {
	ID            string                  `json:"id"`
	HallID        string                  `json:"hallId"`
	UserID        string                  `json:"userId"`
	BookingDate   string                  `json:"bookingDate,omitempty"`   // YYYY-MM-DD
	AllotmentDate string                  `json:"allotmentDate,omitempty"` // legacy field name, same meaning
	StartTime     string                  `json:"startTime"`
	EndTime       string                  `json:"endTime"`
	Status        constants.BookingStatus `json:"status"`
	PaymentStatus string                  `json:"paymentStatus,omitempty"`
	TotalAmount   float64                 `json:"totalAmount"`
	CustomerName  string                  `json:"customerName,omitempty"`
}

// Date returns the booking's calendar date, preferring bookingDate over the
// legacy allotmentDate field.
func (b *Booking) Date() string {
	if b.BookingDate != "" {
		return b.BookingDate
	}
	return b.AllotmentDate
}

// Blocks reports whether this booking occupies time on the calendar.
// Cancelled bookings never conflict with anything.
func (b *Booking) Blocks() bool {
	return b.Status != constants.BookingCancelled
}

// CanTransitionTo reports whether the owner may move this booking to the
// given status.
func (b *Booking) CanTransitionTo(next constants.BookingStatus) bool {
	for _, allowed := range constants.ValidStatusTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}
