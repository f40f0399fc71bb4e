package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hallbook/internal/api"
	"hallbook/internal/config"
	"hallbook/internal/constants"
	"hallbook/internal/models"
	"hallbook/internal/repository"
	"hallbook/internal/timeutil"
)

// Context carries the shared dependencies into every command.
type Context struct {
	Store *config.Store
	Debug bool

	client *api.Client
}

// Client returns the authenticated API client, constructing it on first use
// from the stored base URL and token.
func (c *Context) Client() (*api.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	token, err := config.GetToken()
	if err != nil {
		return nil, err
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	c.client = api.New(settings.APIBaseURL, token)
	return c.client, nil
}

// Repository returns a fresh slot repository over the API client.
func (c *Context) Repository() (*repository.Repository, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	return repository.New(client), nil
}

// ResolveHall returns the hall to operate on: the explicit flag value if
// given, otherwise the persisted last selection.
func (c *Context) ResolveHall(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", err
	}
	if settings.SelectedHall == "" {
		return "", errors.New("no hall selected; pass --hall or pick one in the TUI")
	}
	return settings.SelectedHall, nil
}

// HandleAPIError normalizes backend failures for command output. A blocked
// account forces logout before reporting.
func (c *Context) HandleAPIError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrAccountBlocked) {
		if delErr := config.DeleteToken(); delErr != nil {
			return fmt.Errorf("account blocked; clearing stored token also failed: %v", delErr)
		}
		return errors.New("your account has been blocked; you have been logged out")
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("backend rejected the request: %s", apiErr.Error())
	}
	return err
}

// FormatRecurrence formats a slot's recurrence for display.
func FormatRecurrence(slot models.TimeSlot) string {
	if !slot.IsRecurring || slot.RecurringPattern == nil {
		return "one-time"
	}
	return fmt.Sprintf("weekly on %s until %s",
		timeutil.FormatWeekdays(slot.RecurringDays), slot.RecurringPattern.EndDate)
}

// FormatSlotLine renders one slot as a list row.
func FormatSlotLine(slot models.TimeSlot) string {
	return fmt.Sprintf("%-36s  %s  %s - %s  %-10s %s",
		slot.ID, slot.Date,
		timeutil.FormatTime12(slot.StartTime), timeutil.FormatTime12(slot.EndTime),
		slot.Status, FormatRecurrence(slot))
}

// FormatBookingLine renders one booking as a list row.
func FormatBookingLine(b models.Booking) string {
	name := b.CustomerName
	if name == "" {
		name = b.UserID
	}
	return fmt.Sprintf("%-36s  %s  %s - %s  %-10s %10.2f  %s",
		b.ID, b.Date(),
		timeutil.FormatTime12(b.StartTime), timeutil.FormatTime12(b.EndTime),
		b.Status, b.TotalAmount, name)
}

// ParseBookingStatus parses a user-supplied status string.
func ParseBookingStatus(s string) (constants.BookingStatus, error) {
	switch constants.BookingStatus(strings.ToLower(strings.TrimSpace(s))) {
	case constants.BookingPending:
		return constants.BookingPending, nil
	case constants.BookingConfirmed:
		return constants.BookingConfirmed, nil
	case constants.BookingCancelled:
		return constants.BookingCancelled, nil
	case constants.BookingCompleted:
		return constants.BookingCompleted, nil
	}
	return "", fmt.Errorf("invalid status %q (expected pending|confirmed|cancelled|completed)", s)
}

// ParseWeekdaysFlag parses the --weekdays flag, requiring at least one day.
func ParseWeekdaysFlag(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("weekly slots require --weekdays")
	}
	return timeutil.ParseWeekdays(s)
}

// CommandContext returns the context used for one-shot CLI calls.
func CommandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.RequestTimeout+5*time.Second)
}
