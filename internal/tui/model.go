// Package tui is the interactive owner dashboard: calendar, slot
// management, bookings, and earnings over the booking backend.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"hallbook/internal/api"
	"hallbook/internal/config"
	"hallbook/internal/constants"
	"hallbook/internal/models"
	"hallbook/internal/repository"
	"hallbook/internal/tui/components/bookingtable"
	"hallbook/internal/tui/components/calendarview"
	"hallbook/internal/tui/components/earnings"
	"hallbook/internal/tui/components/slotlist"
	"hallbook/internal/tui/handlers"
)

type Model struct {
	store  *config.Store
	client *api.Client
	repo   *repository.Repository

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	styles        Styles

	halls    []models.Hall
	hallID   string
	hallName string

	calendarView calendarview.Model
	slotList     slotlist.Model
	bookingTable bookingtable.Model
	earnings     earnings.Model

	form        *huh.Form
	slotForm    *handlers.SlotFormModel
	hallForm    *handlers.HallFormModel
	editingSlot *models.TimeSlot
	formError   string

	slotToDelete   *models.TimeSlot
	deleteMessage  string
	statusTarget   *models.Booking
	blockedMessage string

	notice    string
	noticeErr bool
	noticeSeq int

	// Focus within the dashboard tab: calendar by default, booking table
	// when toggled.
	tableFocused bool

	width    int
	height   int
	quitting bool
}

func NewModel(store *config.Store, client *api.Client) Model {
	settings, _ := store.GetSettings()

	m := Model{
		store:        store,
		client:       client,
		repo:         repository.New(client),
		state:        constants.StateDashboard,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		styles:       NewStyles(settings.Theme),
		hallID:       settings.SelectedHall,
		calendarView: calendarview.New(),
		slotList:     slotlist.New(nil, 0, 0),
		bookingTable: bookingtable.New(nil, 0, 0),
		earnings:     earnings.New(),
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Hall, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Hall, m.keys.Focus, m.keys.Refresh, m.keys.Quit, m.keys.Help}

	var contextual []key.Binding
	switch m.state {
	case constants.StateDashboard:
		contextual = m.calendarView.KeyBindings()
	case constants.StateSlots:
		keys := slotlist.DefaultKeyMap()
		contextual = []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	contextual = append(contextual, m.bookingTable.KeyBindings()...)

	return [][]key.Binding{global, contextual}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.earnings.Init(),
		m.loadHallsCmd(),
		m.reloadCmd(),
		m.revenueCmd(),
	)
}
