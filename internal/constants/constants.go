package constants

import "time"

// SessionState represents the current state of the TUI application.
type SessionState int

// ViewMode represents the calendar view granularity.
type ViewMode string

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

// RecurrenceFrequency represents how a recurring slot repeats.
type RecurrenceFrequency string

const (
	AppName           = "hallbook"
	Version           = "v0.3.1"
	DefaultConfigPath = "~/.config/hallbook/hallbook.db"
	KeyringService    = "hallbook"
	KeyringTokenUser  = "api-token"
	TokenEnvVar       = "HALLBOOK_API_TOKEN"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Clock12Format renders a time-of-day for display (e.g. "2:30 PM")
	Clock12Format = "3:04 PM"

	// DefaultAPIBaseURL is used until the user configures their own backend
	DefaultAPIBaseURL = "https://api.hallbook.app"

	// RequestTimeout bounds every backend call
	RequestTimeout = 15 * time.Second

	// BookingPageSize is the fixed page size for the dashboard booking table
	BookingPageSize = 10

	// NoticeDuration is how long transient notices stay on screen
	NoticeDuration = 3 * time.Second

	// FullDayHours is the capacity ceiling used by the fully-booked heuristic
	FullDayHours = 24.0

	// Slot status values
	SlotStatusAvailable = "available"

	// Booking status values
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"

	// Delete response discriminators
	DeleteTypeAvailabilitySlot = "availability_slot"

	// Recurrence frequencies
	FrequencyWeekly RecurrenceFrequency = "weekly"

	// Calendar view modes
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
	ViewDay   ViewMode = "day"
)

// Session states. The first NumMainTabs states are the cycle-able top-level
// tabs; the rest are modal sub-states.
const (
	StateDashboard SessionState = iota
	StateSlots
	StateEarnings
	StateHallPicker
	StateSlotForm
	StateConfirmDelete
	StateConfirmStatus
	StateBlocked

	NumMainTabs = 3
)

// ValidStatusTransitions maps a booking status to the statuses an owner may
// move it to from the dashboard.
var ValidStatusTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}
