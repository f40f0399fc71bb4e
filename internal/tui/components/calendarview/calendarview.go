// Package calendarview renders the availability calendar and enforces the
// date selection policy: past and fully-booked dates emit a rejection
// notice instead of a selection.
package calendarview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hallbook/internal/calendar"
	"hallbook/internal/constants"
	"hallbook/internal/models"
	"hallbook/internal/timeutil"
)

// SelectDateMsg is emitted when the user picks a selectable date.
type SelectDateMsg struct {
	Date time.Time
}

// RejectDateMsg is emitted when the user picks a date the policy refuses.
type RejectDateMsg struct {
	Reason string
}

type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevUnit key.Binding
	NextUnit key.Binding
	Month    key.Binding
	Week     key.Binding
	DayView  key.Binding
	Today    key.Binding
	Select   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevUnit: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "back"),
		),
		NextUnit: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "forward"),
		),
		Month: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "month view"),
		),
		Week: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "week view"),
		),
		DayView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "day view"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add slot on date"),
		),
	}
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	weekdayRowStyle = lipgloss.NewStyle().Faint(true)
	dayCellStyle    = lipgloss.NewStyle().Width(5).Align(lipgloss.Right).Padding(0, 1)
	otherMonthStyle = dayCellStyle.Faint(true)
	pastStyle       = dayCellStyle.Foreground(lipgloss.Color("240")).Strikethrough(true)
	todayStyle      = dayCellStyle.Underline(true).Bold(true)
	selectedStyle   = dayCellStyle.Reverse(true)
	bookedStyle     = dayCellStyle.Foreground(lipgloss.Color("203"))
	availStyle      = dayCellStyle.Foreground(lipgloss.Color("115"))
	legendStyle     = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

type Model struct {
	engine   *calendar.Engine
	selected time.Time
	slots    []models.TimeSlot
	bookings []models.Booking
	keys     KeyMap
	width    int
	height   int
}

func New() Model {
	today := timeutil.Midnight(time.Now())
	return Model{
		engine:   calendar.NewEngine(today),
		selected: today,
		keys:     DefaultKeyMap(),
	}
}

// SetRecords replaces the slot and booking lists backing the view.
func (m *Model) SetRecords(slots []models.TimeSlot, bookings []models.Booking) {
	m.slots = slots
	m.bookings = bookings
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the currently highlighted date.
func (m Model) Selected() time.Time {
	return m.selected
}

// KeyBindings returns the component's bindings for the help view.
func (m Model) KeyBindings() []key.Binding {
	return []key.Binding{
		m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down,
		m.keys.PrevUnit, m.keys.NextUnit,
		m.keys.Month, m.keys.Week, m.keys.DayView,
		m.keys.Today, m.keys.Select,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.moveSelection(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveSelection(1)
		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-7)
		case key.Matches(msg, m.keys.Down):
			m.moveSelection(7)
		case key.Matches(msg, m.keys.PrevUnit):
			m.engine.Advance(-1)
		case key.Matches(msg, m.keys.NextUnit):
			m.engine.Advance(1)
		case key.Matches(msg, m.keys.Month):
			m.engine.View = constants.ViewMonth
		case key.Matches(msg, m.keys.Week):
			m.engine.View = constants.ViewWeek
		case key.Matches(msg, m.keys.DayView):
			m.engine.View = constants.ViewDay
		case key.Matches(msg, m.keys.Today):
			today := timeutil.Midnight(time.Now())
			m.selected = today
			m.engine.Reference = today
		case key.Matches(msg, m.keys.Select):
			return m, m.selectCmd()
		}
	}
	return m, nil
}

func (m *Model) moveSelection(days int) {
	m.selected = m.selected.AddDate(0, 0, days)
	// The reference follows the selection so navigation never scrolls the
	// highlight off screen.
	m.engine.Reference = m.selected
}

func (m Model) selectCmd() tea.Cmd {
	state := m.classify(m.selected)
	if state.IsPast {
		return func() tea.Msg {
			return RejectDateMsg{Reason: "Cannot add slots on past dates"}
		}
	}
	if state.FullyBooked {
		return func() tea.Msg {
			return RejectDateMsg{Reason: "This date is fully booked"}
		}
	}
	date := m.selected
	return func() tea.Msg {
		return SelectDateMsg{Date: date}
	}
}

func (m Model) classify(date time.Time) calendar.DayState {
	today := timeutil.Midnight(time.Now())
	// Classify expects the lists already narrowed to the date; passing the
	// full cache would sum capacity across the whole hall.
	return calendar.Classify(date, today, m.selected,
		calendar.SlotsOn(date, m.slots), calendar.BookingsOn(date, m.bookings))
}

func (m Model) View() string {
	var content string
	switch m.engine.View {
	case constants.ViewWeek:
		content = m.viewWeek()
	case constants.ViewDay:
		content = m.viewDay()
	default:
		content = m.viewMonth()
	}
	legend := legendStyle.Render("enter: add slot on date · m/w/v: view · [/]: navigate")
	return lipgloss.JoinVertical(lipgloss.Left, content, legend)
}

func (m Model) viewMonth() string {
	ref := m.engine.Reference
	var b strings.Builder
	b.WriteString(headerStyle.Render(ref.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(weekdayRowStyle.Render("  Sun  Mon  Tue  Wed  Thu  Fri  Sat"))
	b.WriteString("\n")

	grid := calendar.MonthGrid(ref)
	for row := 0; row < 6; row++ {
		cells := make([]string, 7)
		for col := 0; col < 7; col++ {
			day := grid[row*7+col]
			cells[col] = m.renderCell(day)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCell(day calendar.Day) string {
	label := fmt.Sprintf("%d", day.Date.Day())
	state := m.classify(day.Date)

	style := dayCellStyle
	switch {
	case state.IsSelected:
		style = selectedStyle
	case state.IsToday:
		style = todayStyle
	case day.OtherMonth:
		style = otherMonthStyle
	case state.IsPast:
		style = pastStyle
	case state.FullyBooked:
		style = bookedStyle
	default:
		slots := calendar.SlotsOn(day.Date, m.slots)
		if available, _ := calendar.PartitionSlots(slots); len(available) > 0 {
			style = availStyle
		}
	}
	return style.Render(label)
}

func (m Model) viewWeek() string {
	var b strings.Builder
	dates := calendar.WeekDates(m.engine.Reference)
	b.WriteString(headerStyle.Render(fmt.Sprintf("Week of %s", timeutil.FormatDate(dates[0]))))
	b.WriteString("\n")

	for _, date := range dates {
		state := m.classify(date)
		marker := " "
		if state.IsSelected {
			marker = ">"
		}
		slots := calendar.SlotsOn(date, m.slots)
		bookings := calendar.BookingsOn(date, m.bookings)
		available, occupied := calendar.PartitionSlots(slots)
		line := fmt.Sprintf("%s %s %-9s  %d open, %d occupied, %d booked",
			marker, timeutil.FormatDate(date), date.Weekday().String(),
			len(available), len(occupied), len(bookings))
		if state.FullyBooked {
			line += "  (full)"
		}
		if state.IsPast {
			b.WriteString(weekdayRowStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewDay() string {
	var b strings.Builder
	date := m.engine.Reference
	b.WriteString(headerStyle.Render(date.Format("Monday, January 2, 2006")))
	b.WriteString("\n")

	daySlots := calendar.SlotsOn(date, m.slots)
	dayBookings := calendar.BookingsOn(date, m.bookings)
	empty := true
	for hour := 0; hour < 24; hour++ {
		slots := calendar.SlotsInHour(daySlots, hour)
		bookings := calendar.BookingsInHour(dayBookings, hour)
		if len(slots) == 0 && len(bookings) == 0 {
			continue
		}
		empty = false
		b.WriteString(fmt.Sprintf("%02d:00", hour))
		for _, s := range slots {
			b.WriteString(fmt.Sprintf("  slot %s-%s",
				timeutil.FormatTime12(s.StartTime), timeutil.FormatTime12(s.EndTime)))
		}
		for _, bk := range bookings {
			b.WriteString(fmt.Sprintf("  booking %s-%s (%s)",
				timeutil.FormatTime12(bk.StartTime), timeutil.FormatTime12(bk.EndTime), bk.Status))
		}
		b.WriteString("\n")
	}
	if empty {
		b.WriteString(weekdayRowStyle.Render("No slots or bookings on this day."))
		b.WriteString("\n")
	}
	return b.String()
}
