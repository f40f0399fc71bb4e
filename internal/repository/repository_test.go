package repository

import (
	"context"
	"errors"
	"testing"

	"hallbook/internal/models"
)

type fakeSource struct {
	slots    map[string][]models.TimeSlot
	bookings map[string][]models.Booking
	err      error
}

func (f *fakeSource) ListHallSlots(_ context.Context, hallID string) ([]models.TimeSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots[hallID], nil
}

func (f *fakeSource) ListHallBookings(_ context.Context, hallID string) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings[hallID], nil
}

func TestLoadSlotsReplacesWholesale(t *testing.T) {
	src := &fakeSource{slots: map[string][]models.TimeSlot{
		"h1": {{ID: "s1", Date: "2025-07-10"}},
		"h2": {{ID: "s2", Date: "2025-07-11"}, {ID: "s3", Date: "2025-07-12"}},
	}}
	repo := New(src)

	got := repo.LoadSlots(context.Background(), "h1")
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("unexpected slots: %+v", got)
	}

	got = repo.LoadSlots(context.Background(), "h2")
	if len(got) != 2 || got[0].ID != "s2" {
		t.Fatalf("h2 load did not replace list: %+v", got)
	}
}

func TestFetchFailureResetsToEmpty(t *testing.T) {
	src := &fakeSource{slots: map[string][]models.TimeSlot{
		"h1": {{ID: "s1"}},
	}}
	repo := New(src)
	repo.LoadSlots(context.Background(), "h1")
	if len(repo.Slots()) != 1 {
		t.Fatal("precondition: list loaded")
	}

	src.err = errors.New("network down")
	got := repo.LoadSlots(context.Background(), "h1")
	if len(got) != 0 {
		t.Errorf("failed load should reset slots to empty, got %+v", got)
	}

	bookings := repo.LoadBookings(context.Background(), "h1")
	if len(bookings) != 0 {
		t.Errorf("failed load should reset bookings to empty, got %+v", bookings)
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	repo := New(&fakeSource{})

	genA := repo.Begin("h1")
	genB := repo.Begin("h2")

	// The h1 response arrives after h2 was selected; it must be dropped.
	changed := repo.ApplySlots(genA, []models.TimeSlot{{ID: "stale"}}, nil)
	if changed {
		t.Error("stale apply reported a change")
	}
	if len(repo.Slots()) != 0 {
		t.Errorf("stale slots installed: %+v", repo.Slots())
	}

	changed = repo.ApplySlots(genB, []models.TimeSlot{{ID: "fresh"}}, nil)
	if !changed {
		t.Error("current-generation apply reported no change")
	}
	if len(repo.Slots()) != 1 || repo.Slots()[0].ID != "fresh" {
		t.Errorf("unexpected slots: %+v", repo.Slots())
	}
}

func TestApplyDetectsUnchangedLists(t *testing.T) {
	repo := New(&fakeSource{})
	slots := []models.TimeSlot{{ID: "s1", Date: "2025-07-10", StartTime: "14:00", EndTime: "16:00"}}

	gen := repo.Begin("h1")
	if !repo.ApplySlots(gen, slots, nil) {
		t.Error("first apply should report a change")
	}

	// Same content refetched: no change.
	same := []models.TimeSlot{{ID: "s1", Date: "2025-07-10", StartTime: "14:00", EndTime: "16:00"}}
	if repo.ApplySlots(gen, same, nil) {
		t.Error("identical refetch reported a change")
	}

	// Mutated content: change.
	same[0].EndTime = "17:00"
	if !repo.ApplySlots(gen, same, nil) {
		t.Error("modified refetch reported no change")
	}
}

func TestApplyBookingsGenerationAndChange(t *testing.T) {
	repo := New(&fakeSource{})
	gen := repo.Begin("h1")

	bookings := []models.Booking{{ID: "b1", BookingDate: "2025-07-10"}}
	if !repo.ApplyBookings(gen, bookings, nil) {
		t.Error("first apply should report a change")
	}

	repo.Begin("h2")
	if repo.ApplyBookings(gen, []models.Booking{{ID: "b2"}}, nil) {
		t.Error("stale booking apply reported a change")
	}
	if repo.Bookings()[0].ID != "b1" {
		t.Errorf("stale bookings installed: %+v", repo.Bookings())
	}
}
