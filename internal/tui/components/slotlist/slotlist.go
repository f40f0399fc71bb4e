// Package slotlist shows the selected hall's availability slots as a
// filterable list with add/edit/delete actions.
package slotlist

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"hallbook/internal/models"
	"hallbook/internal/timeutil"
)

type AddSlotMsg struct{}

type EditSlotMsg struct {
	Slot models.TimeSlot
}

type DeleteSlotMsg struct {
	Slot models.TimeSlot
}

type Item struct {
	Slot models.TimeSlot
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %s - %s", i.Slot.Date,
		timeutil.FormatTime12(i.Slot.StartTime), timeutil.FormatTime12(i.Slot.EndTime))
}

func (i Item) Description() string {
	desc := i.Slot.Status
	if !i.Slot.IsAvailabilitySlot {
		desc = "occupied"
	}
	if i.Slot.IsRecurring && i.Slot.RecurringPattern != nil {
		desc += fmt.Sprintf(", weekly on %s until %s",
			timeutil.FormatWeekdays(i.Slot.RecurringDays), i.Slot.RecurringPattern.EndDate)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Slot.Date }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add slot"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit slot"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete slot"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(slots []models.TimeSlot, width, height int) Model {
	l := list.New(toItems(slots), list.NewDefaultDelegate(), width, height)
	l.Title = "Availability Slots"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func toItems(slots []models.TimeSlot) []list.Item {
	sorted := make([]models.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})

	items := make([]list.Item, len(sorted))
	for i, s := range sorted {
		items[i] = Item{Slot: s}
	}
	return items
}

func (m *Model) SetSlots(slots []models.TimeSlot) {
	m.list.SetItems(toItems(slots))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddSlotMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Slot.IsAvailabilitySlot {
					return m, func() tea.Msg { return EditSlotMsg{Slot: i.Slot} }
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteSlotMsg{Slot: i.Slot} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No availability slots yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
