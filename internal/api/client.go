package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"hallbook/internal/constants"
	"hallbook/internal/logger"
	"hallbook/internal/models"
)

// ErrAccountBlocked is returned when the backend rejects the token because
// the account has been blocked. Callers must clear the stored token and
// force the user back to login.
var ErrAccountBlocked = errors.New("account blocked")

// Error is a non-2xx response from the backend, carrying the message field
// of the error envelope when one was present.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client talks to the hall booking backend. All methods are safe for use
// from a single goroutine; the TUI event loop is single-threaded.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// New creates a Client for the given backend base URL and bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: constants.RequestTimeout},
	}
}

// do performs a JSON request and decodes the response into out (when out is
// non-nil). Error envelopes are expected to carry a "message" field; absent
// or undecodable bodies degrade to a generic message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Message = envelope.Message
		}
		logger.Warn("API request failed", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		if isBlocked(resp.StatusCode, apiErr.Message) {
			return fmt.Errorf("%w: %s", ErrAccountBlocked, apiErr.Message)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func isBlocked(status int, message string) bool {
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		return false
	}
	return strings.Contains(strings.ToLower(message), "blocked")
}

// ListHallSlots fetches all availability slots for a hall.
func (c *Client) ListHallSlots(ctx context.Context, hallID string) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	path := fmt.Sprintf("/api/hallalloted/hall/%s/all-slots", hallID)
	if err := c.do(ctx, http.MethodGet, path, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ListHallBookings fetches all bookings for a hall.
func (c *Client) ListHallBookings(ctx context.Context, hallID string) ([]models.Booking, error) {
	var bookings []models.Booking
	path := fmt.Sprintf("/api/hallalloted/hall/%s/bookings", hallID)
	if err := c.do(ctx, http.MethodGet, path, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateSlot submits a new availability slot.
func (c *Client) CreateSlot(ctx context.Context, slot models.TimeSlot) (models.TimeSlot, error) {
	var created models.TimeSlot
	if err := c.do(ctx, http.MethodPost, "/api/hallalloted", slot, &created); err != nil {
		return models.TimeSlot{}, err
	}
	return created, nil
}

// UpdateSlot replaces an existing availability slot.
func (c *Client) UpdateSlot(ctx context.Context, id string, slot models.TimeSlot) (models.TimeSlot, error) {
	var updated models.TimeSlot
	if err := c.do(ctx, http.MethodPut, "/api/hallalloted/"+id, slot, &updated); err != nil {
		return models.TimeSlot{}, err
	}
	return updated, nil
}

// DeleteRecord is the response of a delete call. Type discriminates an
// availability slot from a cancelled booking, purely so the caller can pick
// a confirmation message.
type DeleteRecord struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DeleteSlot deletes an availability slot, or cancels and deletes a booking
// occupying the record.
func (c *Client) DeleteSlot(ctx context.Context, id string) (DeleteRecord, error) {
	var rec DeleteRecord
	if err := c.do(ctx, http.MethodDelete, "/api/hallalloted/"+id, nil, &rec); err != nil {
		return DeleteRecord{}, err
	}
	return rec, nil
}

// ListBookings fetches all bookings across the owner's halls.
func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingStatus requests a booking status transition.
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status constants.BookingStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, "/api/bookings/"+id+"/status", body, nil)
}

// CompleteBooking records a completed booking for revenue aggregation.
func (c *Client) CompleteBooking(ctx context.Context, bookingID string) error {
	body := map[string]string{"bookingId": bookingID}
	return c.do(ctx, http.MethodPost, "/api/owner-revenue/complete-booking", body, nil)
}

// TotalRevenue fetches the owner's revenue aggregate.
func (c *Client) TotalRevenue(ctx context.Context) (models.RevenueSummary, error) {
	var summary models.RevenueSummary
	if err := c.do(ctx, http.MethodGet, "/api/owner-revenue/total", nil, &summary); err != nil {
		return models.RevenueSummary{}, err
	}
	return summary, nil
}

// MyAllotments fetches the owner's full allotment list, the documented
// fallback source for revenue when the aggregate endpoint fails.
func (c *Client) MyAllotments(ctx context.Context) ([]models.Booking, error) {
	var allotments []models.Booking
	if err := c.do(ctx, http.MethodGet, "/api/hallalloted/owner/my-allotments", nil, &allotments); err != nil {
		return nil, err
	}
	return allotments, nil
}

// MyHalls fetches the halls owned by the signed-in user.
func (c *Client) MyHalls(ctx context.Context) ([]models.Hall, error) {
	var halls []models.Hall
	if err := c.do(ctx, http.MethodGet, "/api/hallalloted/owner/my-halls", nil, &halls); err != nil {
		return nil, err
	}
	return halls, nil
}
