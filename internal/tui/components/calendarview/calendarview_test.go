package calendarview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hallbook/internal/constants"
	"hallbook/internal/models"
	"hallbook/internal/timeutil"
)

func selectMsg(t *testing.T, m Model) tea.Msg {
	t.Helper()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from selecting a date")
	}
	return cmd()
}

func TestSelectToday(t *testing.T) {
	m := New()

	raw := selectMsg(t, m)
	msg, ok := raw.(SelectDateMsg)
	if !ok {
		t.Fatalf("expected SelectDateMsg, got %T", raw)
	}
	if !timeutil.SameDay(msg.Date, time.Now()) {
		t.Errorf("expected today, got %s", timeutil.FormatDate(msg.Date))
	}
}

func TestSelectPastDateRejected(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})

	raw := selectMsg(t, m)
	msg, ok := raw.(RejectDateMsg)
	if !ok {
		t.Fatalf("expected RejectDateMsg for a past date, got %T", raw)
	}
	if msg.Reason == "" {
		t.Error("expected a rejection reason")
	}
}

func TestCapacityIsScopedToTheDate(t *testing.T) {
	today := timeutil.Midnight(time.Now())
	emptyDate := today.AddDate(0, 0, 1)
	fullDate := today.AddDate(0, 0, 2)

	// 25 summed hours, all on fullDate.
	m := New()
	m.SetRecords(
		[]models.TimeSlot{{
			ID:        "s1",
			Date:      timeutil.FormatDate(fullDate),
			StartTime: "00:00",
			EndTime:   "23:00",
			Status:    constants.SlotStatusAvailable,
		}},
		[]models.Booking{{
			ID:          "b1",
			BookingDate: timeutil.FormatDate(fullDate),
			StartTime:   "10:00",
			EndTime:     "12:00",
			Status:      constants.BookingConfirmed,
		}},
	)

	// A record-free date stays selectable no matter how loaded the rest of
	// the hall's calendar is.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	raw := selectMsg(t, m)
	sel, ok := raw.(SelectDateMsg)
	if !ok {
		t.Fatalf("expected SelectDateMsg for an empty date, got %T", raw)
	}
	if !timeutil.SameDay(sel.Date, emptyDate) {
		t.Errorf("selected %s, want %s", timeutil.FormatDate(sel.Date), timeutil.FormatDate(emptyDate))
	}

	// The loaded date itself is rejected.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	raw = selectMsg(t, m)
	rej, ok := raw.(RejectDateMsg)
	if !ok {
		t.Fatalf("expected RejectDateMsg for the fully booked date, got %T", raw)
	}
	if rej.Reason != "This date is fully booked" {
		t.Errorf("unexpected rejection reason: %q", rej.Reason)
	}
}

func TestCancelledBookingsDoNotBlockSelection(t *testing.T) {
	today := timeutil.Midnight(time.Now())
	target := today.AddDate(0, 0, 1)

	m := New()
	m.SetRecords(nil, []models.Booking{
		{BookingDate: timeutil.FormatDate(target), StartTime: "00:00", EndTime: "13:00", Status: constants.BookingCancelled},
		{BookingDate: timeutil.FormatDate(target), StartTime: "10:00", EndTime: "22:00", Status: constants.BookingCancelled},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	raw := selectMsg(t, m)
	if _, ok := raw.(SelectDateMsg); !ok {
		t.Fatalf("expected SelectDateMsg when only cancelled bookings exist, got %T", raw)
	}
}

func TestWeekViewSummarizesRecords(t *testing.T) {
	today := timeutil.Midnight(time.Now())
	target := today.AddDate(0, 0, 2)

	m := New()
	m.SetRecords(
		[]models.TimeSlot{{
			Date:               timeutil.FormatDate(target),
			StartTime:          "14:00",
			EndTime:            "16:00",
			Status:             constants.SlotStatusAvailable,
			IsAvailabilitySlot: true,
		}},
		[]models.Booking{{
			BookingDate: timeutil.FormatDate(target),
			StartTime:   "18:00",
			EndTime:     "20:00",
			Status:      constants.BookingConfirmed,
		}},
	)

	// Move the reference onto the target date, then switch to week view.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})

	view := m.View()
	want := "1 open, 0 occupied, 1 booked"
	if !strings.Contains(view, want) {
		t.Errorf("week view missing %q for %s:\n%s", want, timeutil.FormatDate(target), view)
	}
}

func TestNavigationMovesSelection(t *testing.T) {
	m := New()
	start := m.Selected()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Selected(); !got.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("right: got %s, want next day", timeutil.FormatDate(got))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.Selected(); !got.Equal(start.AddDate(0, 0, 8)) {
		t.Errorf("down: got %s, want one week later", timeutil.FormatDate(got))
	}
}
