package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"hallbook/internal/api"
	"hallbook/internal/config"
	"hallbook/internal/constants"
	"hallbook/internal/logger"
	"hallbook/internal/models"
	"hallbook/internal/repository"
	"hallbook/internal/timeutil"
	"hallbook/internal/tui/components/bookingtable"
	"hallbook/internal/tui/components/calendarview"
	"hallbook/internal/tui/components/slotlist"
	"hallbook/internal/tui/handlers"
	"hallbook/internal/validation"
)

type slotsLoadedMsg struct {
	gen   repository.Generation
	slots []models.TimeSlot
	err   error
}

type bookingsLoadedMsg struct {
	gen      repository.Generation
	bookings []models.Booking
	err      error
}

type hallsLoadedMsg struct {
	halls []models.Hall
	err   error
}

type revenueLoadedMsg struct {
	summary models.RevenueSummary
	err     error
}

type mutationDoneMsg struct {
	notice string
	err    error
}

type noticeExpiredMsg struct {
	seq int
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.RequestTimeout)
}

// reloadCmd starts a fresh load cycle for the selected hall. Both fetches
// run concurrently; results carry the generation token so stale completions
// are discarded by ApplySlots/ApplyBookings.
func (m Model) reloadCmd() tea.Cmd {
	if m.hallID == "" {
		return nil
	}
	gen := m.repo.Begin(m.hallID)
	hallID := m.hallID

	fetchSlots := func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		slots, err := m.repo.FetchSlots(ctx, hallID)
		return slotsLoadedMsg{gen: gen, slots: slots, err: err}
	}
	fetchBookings := func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		bookings, err := m.repo.FetchBookings(ctx, hallID)
		return bookingsLoadedMsg{gen: gen, bookings: bookings, err: err}
	}
	return tea.Batch(fetchSlots, fetchBookings)
}

func (m Model) loadHallsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		halls, err := m.client.MyHalls(ctx)
		return hallsLoadedMsg{halls: halls, err: err}
	}
}

func (m Model) revenueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		summary, err := m.client.Revenue(ctx)
		return revenueLoadedMsg{summary: summary, err: err}
	}
}

func (m Model) saveSlotCmd(slot models.TimeSlot, isEdit bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		var err error
		notice := "Slot created"
		if isEdit {
			_, err = m.client.UpdateSlot(ctx, slot.ID, slot)
			notice = "Slot updated"
		} else {
			_, err = m.client.CreateSlot(ctx, slot)
		}
		return mutationDoneMsg{notice: notice, err: err}
	}
}

func (m Model) deleteSlotCmd(slot models.TimeSlot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		record, err := m.client.DeleteSlot(ctx, slot.ID)
		notice := "Record deleted"
		if err == nil && record.Type == constants.DeleteTypeAvailabilitySlot {
			notice = "Availability slot deleted"
		}
		return mutationDoneMsg{notice: notice, err: err}
	}
}

func (m Model) statusCmd(booking models.Booking, next constants.BookingStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		if err := m.client.UpdateBookingStatus(ctx, booking.ID, next); err != nil {
			return mutationDoneMsg{err: err}
		}
		if next == constants.BookingCompleted {
			// Revenue recording is best effort; the status change already
			// succeeded.
			if err := m.client.CompleteBooking(ctx, booking.ID); err != nil {
				logger.Warn("Recording completed booking failed", "booking", booking.ID, "error", err)
			}
		}
		return mutationDoneMsg{notice: fmt.Sprintf("Booking %s", next)}
	}
}

// pushNotice shows a transient notice and schedules its expiry. The
// sequence number keeps an old timer from clearing a newer notice.
func (m *Model) pushNotice(text string, isErr bool) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeErr = isErr
	seq := m.noticeSeq
	return tea.Tick(constants.NoticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// enterBlocked clears the stored token and locks the dashboard behind a
// blocking message.
func (m *Model) enterBlocked() {
	if err := config.DeleteToken(); err != nil {
		logger.Error("Clearing token for blocked account failed", "error", err)
	}
	m.blockedMessage = "Your account has been blocked by the administrator. Contact support to resolve this."
	m.state = constants.StateBlocked
}

func (m *Model) refreshViews() {
	m.calendarView.SetRecords(m.repo.Slots(), m.repo.Bookings())
	m.slotList.SetSlots(m.repo.Slots())
	m.bookingTable.SetBookings(m.repo.Bookings())
}

func (m *Model) openSlotForm(date time.Time) {
	m.slotForm = &handlers.SlotFormModel{Date: timeutil.FormatDate(date)}
	m.editingSlot = nil
	m.form = handlers.NewSlotForm(m.slotForm)
	m.formError = ""
	m.previousState = m.state
	m.state = constants.StateSlotForm
}

func (m *Model) openEditForm(slot models.TimeSlot) {
	fm := &handlers.SlotFormModel{
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Recurring: slot.IsRecurring,
		Weekdays:  slot.RecurringDays,
	}
	if slot.RecurringPattern != nil {
		fm.EndDate = slot.RecurringPattern.EndDate
	}
	m.slotForm = fm
	editing := slot
	m.editingSlot = &editing
	m.form = handlers.NewSlotForm(fm)
	m.formError = ""
	m.previousState = m.state
	m.state = constants.StateSlotForm
}

func (m *Model) openHallPicker() {
	m.hallForm = &handlers.HallFormModel{HallID: m.hallID}
	m.form = handlers.NewHallPickerForm(m.hallForm, m.halls)
	m.previousState = m.state
	m.state = constants.StateHallPicker
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == constants.StateBlocked {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Handle Slot Form State
	if m.state == constants.StateSlotForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = m.previousState
			m.formError = ""
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			vform := validation.SlotForm{
				HallID:        m.hallID,
				Date:          m.slotForm.Date,
				StartTime:     m.slotForm.StartTime,
				EndTime:       m.slotForm.EndTime,
				IsRecurring:   m.slotForm.Recurring,
				RecurringDays: m.slotForm.Weekdays,
				EndDate:       m.slotForm.EndDate,
			}
			slot, err := validation.New().ValidateSlot(vform, m.repo.Slots(), m.repo.Bookings(), m.editingSlot)
			if err != nil {
				// Conflicts keep the user in the form to adjust times.
				m.formError = err.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			isEdit := m.editingSlot != nil
			m.formError = ""
			m.state = m.previousState
			if vform.IsRecurring {
				if dates, perr := validation.PreviewOccurrences(vform); perr == nil {
					cmds = append(cmds, m.pushNotice(
						fmt.Sprintf("Submitting weekly slot (%d occurrences)", len(dates)), false))
				}
			}
			cmds = append(cmds, m.saveSlotCmd(slot, isEdit))
		case huh.StateAborted:
			m.formError = ""
			m.state = m.previousState
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Hall Picker State
	if m.state == constants.StateHallPicker {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc && m.hallID != "" {
			m.state = m.previousState
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			m.hallID = m.hallForm.HallID
			for _, h := range m.halls {
				if h.ID == m.hallID {
					m.hallName = h.Name
				}
			}
			if err := m.store.SetSelectedHall(m.hallID); err != nil {
				logger.Warn("Persisting hall selection failed", "error", err)
			}
			m.state = m.previousState
			m.earnings.Reset()
			cmds = append(cmds, m.reloadCmd(), m.revenueCmd())
		case huh.StateAborted:
			if m.hallID != "" {
				m.state = m.previousState
			}
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Delete State
	if m.state == constants.StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				slot := *m.slotToDelete
				m.slotToDelete = nil
				m.state = m.previousState
				return m, m.deleteSlotCmd(slot)
			case "n", "N", "esc", "q":
				m.slotToDelete = nil
				m.state = m.previousState
			}
		}
		return m, nil
	}

	// Handle Confirm Status State
	if m.state == constants.StateConfirmStatus {
		if msg, ok := msg.(tea.KeyMsg); ok {
			transitions := constants.ValidStatusTransitions[m.statusTarget.Status]
			switch msg.String() {
			case "esc", "q":
				m.statusTarget = nil
				m.state = m.previousState
				return m, nil
			default:
				idx, err := strconv.Atoi(msg.String())
				if err == nil && idx >= 1 && idx <= len(transitions) {
					booking := *m.statusTarget
					next := transitions[idx-1]
					m.statusTarget = nil
					m.state = m.previousState
					return m, m.statusCmd(booking, next)
				}
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 4

		h, v := m.styles.Doc.GetFrameSize()
		m.calendarView.SetSize(msg.Width-h, contentHeight-v)
		m.slotList.SetSize(msg.Width-h, contentHeight-v)
		m.bookingTable.SetSize(msg.Width-h, contentHeight-v)
		m.earnings.SetSize(msg.Width-h, contentHeight-v)

	case tea.FocusMsg:
		// Regaining terminal focus refetches everything, the same way the
		// web dashboard refetches on window focus.
		m.earnings.Reset()
		return m, tea.Batch(m.reloadCmd(), m.revenueCmd())

	case slotsLoadedMsg:
		if errors.Is(msg.err, api.ErrAccountBlocked) {
			m.enterBlocked()
			return m, nil
		}
		if m.repo.ApplySlots(msg.gen, msg.slots, msg.err) {
			m.refreshViews()
		}
		return m, nil

	case bookingsLoadedMsg:
		if errors.Is(msg.err, api.ErrAccountBlocked) {
			m.enterBlocked()
			return m, nil
		}
		if m.repo.ApplyBookings(msg.gen, msg.bookings, msg.err) {
			m.refreshViews()
		}
		return m, nil

	case hallsLoadedMsg:
		if errors.Is(msg.err, api.ErrAccountBlocked) {
			m.enterBlocked()
			return m, nil
		}
		if msg.err != nil {
			logger.Warn("Hall list fetch failed", "error", msg.err)
			return m, nil
		}
		m.halls = msg.halls
		if len(m.halls) == 0 {
			return m, m.pushNotice("No halls found for this account", true)
		}
		for _, h := range m.halls {
			if h.ID == m.hallID {
				m.hallName = h.Name
			}
		}
		if m.hallID == "" {
			m.openHallPicker()
			return m, m.form.Init()
		}
		return m, nil

	case revenueLoadedMsg:
		if errors.Is(msg.err, api.ErrAccountBlocked) {
			m.enterBlocked()
			return m, nil
		}
		if msg.err != nil {
			logger.Warn("Revenue fetch failed", "error", msg.err)
		}
		m.earnings.SetSummary(msg.summary)
		return m, nil

	case mutationDoneMsg:
		if errors.Is(msg.err, api.ErrAccountBlocked) {
			m.enterBlocked()
			return m, nil
		}
		if msg.err != nil {
			var apiErr *api.Error
			text := "Something went wrong, please try again"
			if errors.As(msg.err, &apiErr) && apiErr.Message != "" {
				text = apiErr.Message
			}
			return m, m.pushNotice(text, true)
		}
		// Every successful mutation refetches both lists wholesale.
		m.earnings.Reset()
		return m, tea.Batch(m.pushNotice(msg.notice, false), m.reloadCmd(), m.revenueCmd())

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case calendarview.SelectDateMsg:
		m.openSlotForm(msg.Date)
		return m, m.form.Init()

	case calendarview.RejectDateMsg:
		return m, m.pushNotice(msg.Reason, true)

	case slotlist.AddSlotMsg:
		m.openSlotForm(m.calendarView.Selected())
		return m, m.form.Init()

	case slotlist.EditSlotMsg:
		m.openEditForm(msg.Slot)
		return m, m.form.Init()

	case slotlist.DeleteSlotMsg:
		slot := msg.Slot
		m.slotToDelete = &slot
		m.deleteMessage = "Delete this availability slot?"
		if !slot.IsAvailabilitySlot {
			m.deleteMessage = "Delete this record?"
		}
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case bookingtable.ChangeStatusMsg:
		if len(constants.ValidStatusTransitions[msg.Booking.Status]) == 0 {
			return m, m.pushNotice(fmt.Sprintf("No status changes allowed from %s", msg.Booking.Status), true)
		}
		booking := msg.Booking
		m.statusTarget = &booking
		m.previousState = m.state
		m.state = constants.StateConfirmStatus
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.NumMainTabs) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Hall):
			if len(m.halls) == 0 {
				return m, m.loadHallsCmd()
			}
			m.openHallPicker()
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Refresh):
			m.earnings.Reset()
			return m, tea.Batch(m.reloadCmd(), m.loadHallsCmd(), m.revenueCmd())
		case key.Matches(msg, m.keys.Focus):
			if m.state == constants.StateDashboard {
				m.tableFocused = !m.tableFocused
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		// Key input goes to whichever dashboard pane is focused so the
		// calendar's navigation and the table's paging don't fight over
		// the arrow keys.
		if _, isKey := msg.(tea.KeyMsg); isKey && m.tableFocused {
			m.bookingTable, cmd = m.bookingTable.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			m.calendarView, cmd = m.calendarView.Update(msg)
			cmds = append(cmds, cmd)
		}
	case constants.StateSlots:
		m.slotList, cmd = m.slotList.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateEarnings:
		m.earnings, cmd = m.earnings.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
