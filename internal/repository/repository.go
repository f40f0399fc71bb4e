// Package repository caches the availability-slot and booking lists for the
// currently selected hall. Lists are replaced wholesale on every load; there
// are no incremental updates. Fetch failures reset the affected list to
// empty and are logged, never surfaced as blocking errors, so the dashboard
// stays usable offline.
package repository

import (
	"context"

	"github.com/mitchellh/hashstructure/v2"

	"hallbook/internal/logger"
	"hallbook/internal/models"
)

// Source fetches the two lists from the backend. *api.Client satisfies it.
type Source interface {
	ListHallSlots(ctx context.Context, hallID string) ([]models.TimeSlot, error)
	ListHallBookings(ctx context.Context, hallID string) ([]models.Booking, error)
}

// Generation is a request-sequencing token. Every load cycle gets a fresh
// generation; results arriving for a superseded generation are discarded so
// rapid hall switching cannot overwrite fresh state with a stale response.
type Generation uint64

// Repository holds the cached lists. It is mutated only from the TUI event
// loop (or a single CLI goroutine), so it needs no locking; the generation
// token handles out-of-order fetch completions.
type Repository struct {
	source Source

	hallID   string
	gen      Generation
	slots    []models.TimeSlot
	bookings []models.Booking

	slotsHash    uint64
	bookingsHash uint64
}

// New creates a Repository backed by the given source.
func New(source Source) *Repository {
	return &Repository{source: source}
}

// HallID returns the hall the cache currently belongs to.
func (r *Repository) HallID() string { return r.hallID }

// Slots returns the cached availability slots.
func (r *Repository) Slots() []models.TimeSlot { return r.slots }

// Bookings returns the cached bookings.
func (r *Repository) Bookings() []models.Booking { return r.bookings }

// Begin starts a new load cycle for a hall and returns its generation
// token. Any in-flight results from earlier generations become stale.
func (r *Repository) Begin(hallID string) Generation {
	r.gen++
	r.hallID = hallID
	return r.gen
}

// FetchSlots performs the slot fetch for a load cycle. Safe to call from a
// background goroutine; the result must be applied on the event loop via
// ApplySlots.
func (r *Repository) FetchSlots(ctx context.Context, hallID string) ([]models.TimeSlot, error) {
	return r.source.ListHallSlots(ctx, hallID)
}

// FetchBookings performs the booking fetch for a load cycle.
func (r *Repository) FetchBookings(ctx context.Context, hallID string) ([]models.Booking, error) {
	return r.source.ListHallBookings(ctx, hallID)
}

// ApplySlots installs a slot fetch result. Stale generations are discarded.
// A fetch error resets the list to empty per the degrade-silently contract.
// The return value reports whether the cached list actually changed, so
// callers can skip re-deriving calendar state.
func (r *Repository) ApplySlots(gen Generation, slots []models.TimeSlot, err error) bool {
	if gen != r.gen {
		logger.Debug("Discarding stale slot fetch", "generation", gen, "current", r.gen)
		return false
	}
	if err != nil {
		logger.Warn("Slot fetch failed, resetting list", "hall", r.hallID, "error", err)
		slots = nil
	}

	hash := hashOf(slots)
	if hash == r.slotsHash && len(r.slots) == len(slots) {
		return false
	}
	r.slots = slots
	r.slotsHash = hash
	return true
}

// ApplyBookings installs a booking fetch result, with the same contract as
// ApplySlots.
func (r *Repository) ApplyBookings(gen Generation, bookings []models.Booking, err error) bool {
	if gen != r.gen {
		logger.Debug("Discarding stale booking fetch", "generation", gen, "current", r.gen)
		return false
	}
	if err != nil {
		logger.Warn("Booking fetch failed, resetting list", "hall", r.hallID, "error", err)
		bookings = nil
	}

	hash := hashOf(bookings)
	if hash == r.bookingsHash && len(r.bookings) == len(bookings) {
		return false
	}
	r.bookings = bookings
	r.bookingsHash = hash
	return true
}

// LoadSlots fetches and applies the slot list synchronously, for the CLI
// path where there is no event loop to race with.
func (r *Repository) LoadSlots(ctx context.Context, hallID string) []models.TimeSlot {
	gen := r.Begin(hallID)
	slots, err := r.FetchSlots(ctx, hallID)
	r.ApplySlots(gen, slots, err)
	return r.slots
}

// LoadBookings fetches and applies the booking list synchronously.
func (r *Repository) LoadBookings(ctx context.Context, hallID string) []models.Booking {
	gen := r.gen
	if r.hallID != hallID {
		gen = r.Begin(hallID)
	}
	bookings, err := r.FetchBookings(ctx, hallID)
	r.ApplyBookings(gen, bookings, err)
	return r.bookings
}

func hashOf(v interface{}) uint64 {
	hash, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		// Hashing only gates redundant re-renders; fail open.
		return 0
	}
	return hash
}
