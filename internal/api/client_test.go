package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hallbook/internal/constants"
	"hallbook/internal/models"
)

func TestListHallSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/hallalloted/hall/h1/all-slots" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"s1","hallId":"h1","date":"2025-07-10","startTime":"14:00","endTime":"16:00","status":"available","isAvailabilitySlot":true}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, "tok")
	slots, err := client.ListHallSlots(context.Background(), "h1")
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 || slots[0].ID != "s1" || !slots[0].IsAvailable() {
		t.Errorf("unexpected slots: %+v", slots)
	}
}

func TestErrorEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"slot already exists"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "tok")
	_, err := client.CreateSlot(context.Background(), models.TimeSlot{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "slot already exists" || apiErr.StatusCode != http.StatusConflict {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestErrorWithoutEnvelopeDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := New(srv.URL, "tok")
	_, err := client.ListBookings(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Error() != "request failed with status 500" {
		t.Errorf("unexpected message: %q", apiErr.Error())
	}
}

func TestBlockedAccountDetection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Your account has been blocked"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "tok")
	_, err := client.ListBookings(context.Background())
	if !errors.Is(err, ErrAccountBlocked) {
		t.Errorf("expected ErrAccountBlocked, got %v", err)
	}
}

func TestDeleteSlotDiscriminator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/hallalloted/s1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"type":"availability_slot","message":"deleted"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "tok")
	rec, err := client.DeleteSlot(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Type != constants.DeleteTypeAvailabilitySlot {
		t.Errorf("type = %q", rec.Type)
	}
}

func TestRevenueFallsBackToAllotments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/owner-revenue/total":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/api/hallalloted/owner/my-allotments":
			w.Write([]byte(`[
				{"id":"b1","bookingDate":"2025-07-10","status":"completed","totalAmount":500},
				{"id":"b2","bookingDate":"2025-06-01","status":"completed","totalAmount":300},
				{"id":"b3","bookingDate":"2025-07-12","status":"pending","totalAmount":900}
			]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, "tok")
	summary, err := client.Revenue(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalRevenue != 800 || summary.CompletedBookings != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestSummarizeRevenueMonthly(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.Local)
	bookings := []models.Booking{
		{BookingDate: "2025-07-10", Status: constants.BookingCompleted, TotalAmount: 500},
		{AllotmentDate: "2025-07-20", Status: constants.BookingCompleted, TotalAmount: 250},
		{BookingDate: "2025-06-01", Status: constants.BookingCompleted, TotalAmount: 300},
		{BookingDate: "2025-07-11", Status: constants.BookingCancelled, TotalAmount: 100},
	}
	summary := SummarizeRevenue(bookings, now)
	if summary.TotalRevenue != 1050 {
		t.Errorf("TotalRevenue = %v, want 1050", summary.TotalRevenue)
	}
	if summary.MonthlyRevenue != 750 {
		t.Errorf("MonthlyRevenue = %v, want 750", summary.MonthlyRevenue)
	}
	if summary.CompletedBookings != 3 {
		t.Errorf("CompletedBookings = %d, want 3", summary.CompletedBookings)
	}
}
