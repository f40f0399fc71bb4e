// Package bookingtable renders the dashboard booking table. Pagination is
// client-side over the full cached list with a fixed page size; the table
// widget only ever holds the current page.
package bookingtable

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hallbook/internal/constants"
	"hallbook/internal/models"
	"hallbook/internal/timeutil"
)

// ChangeStatusMsg asks the dashboard to open the status transition prompt
// for a booking.
type ChangeStatusMsg struct {
	Booking models.Booking
}

type KeyMap struct {
	PrevPage key.Binding
	NextPage key.Binding
	Status   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "change status"),
		),
	}
}

var footerStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)

type Model struct {
	table    table.Model
	keys     KeyMap
	bookings []models.Booking
	page     int
	pageSize int
}

func New(bookings []models.Booking, width, height int) Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Time", Width: 20},
		{Title: "Customer", Width: 18},
		{Title: "Amount", Width: 10},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(constants.BookingPageSize+1),
	)

	m := Model{
		table:    t,
		keys:     DefaultKeyMap(),
		pageSize: constants.BookingPageSize,
	}
	m.SetBookings(bookings)
	return m
}

// SetBookings replaces the full list and resets to the first page.
func (m *Model) SetBookings(bookings []models.Booking) {
	sorted := make([]models.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date() != sorted[j].Date() {
			return sorted[i].Date() > sorted[j].Date()
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})
	m.bookings = sorted
	m.page = 0
	m.refreshRows()
}

// PageCount returns the number of pages at the fixed page size. An empty
// list still has one (empty) page.
func (m Model) PageCount() int {
	if len(m.bookings) == 0 {
		return 1
	}
	return (len(m.bookings) + m.pageSize - 1) / m.pageSize
}

// Page returns the zero-based current page.
func (m Model) Page() int {
	return m.page
}

func (m *Model) pageBookings() []models.Booking {
	start := m.page * m.pageSize
	if start >= len(m.bookings) {
		return nil
	}
	end := start + m.pageSize
	if end > len(m.bookings) {
		end = len(m.bookings)
	}
	return m.bookings[start:end]
}

func (m *Model) refreshRows() {
	page := m.pageBookings()
	rows := make([]table.Row, len(page))
	for i, b := range page {
		customer := b.CustomerName
		if customer == "" {
			customer = b.UserID
		}
		rows[i] = table.Row{
			b.Date(),
			fmt.Sprintf("%s - %s", timeutil.FormatTime12(b.StartTime), timeutil.FormatTime12(b.EndTime)),
			customer,
			fmt.Sprintf("%.2f", b.TotalAmount),
			string(b.Status),
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Selected returns the booking under the cursor, if any.
func (m Model) Selected() (models.Booking, bool) {
	page := m.pageBookings()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(page) {
		return models.Booking{}, false
	}
	return page[cursor], true
}

// KeyBindings returns the component's bindings for the help view.
func (m Model) KeyBindings() []key.Binding {
	return []key.Binding{m.keys.PrevPage, m.keys.NextPage, m.keys.Status}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevPage):
			if m.page > 0 {
				m.page--
				m.refreshRows()
			}
			return m, nil
		case key.Matches(msg, m.keys.NextPage):
			if m.page < m.PageCount()-1 {
				m.page++
				m.refreshRows()
			}
			return m, nil
		case key.Matches(msg, m.keys.Status):
			if b, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ChangeStatusMsg{Booking: b} }
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.bookings) == 0 {
		return "\n  No bookings for this hall yet."
	}
	footer := footerStyle.Render(fmt.Sprintf("Page %d/%d (%d bookings)",
		m.page+1, m.PageCount(), len(m.bookings)))
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), footer)
}

func (m *Model) SetSize(width, height int) {
	m.table.SetWidth(width)
}
