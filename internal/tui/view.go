package tui

import (
	"github.com/charmbracelet/lipgloss"

	"hallbook/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == constants.StateBlocked {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				m.styles.Danger.Render("Account blocked"),
				"",
				m.blockedMessage,
				"",
				"Press any key to exit.",
			),
		)
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateSlots:
		content = m.styles.Doc.Render(m.slotList.View())
	case constants.StateEarnings:
		content = m.styles.Doc.Render(m.earnings.View())
	case constants.StateSlotForm, constants.StateHallPicker:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateConfirmStatus:
		content = m.viewConfirmStatus()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewNotice(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Dashboard", "Slots", "Earnings"} {
		state := m.state
		if state >= constants.NumMainTabs {
			state = m.previousState
		}
		if state == constants.SessionState(i) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(title))
		}
	}
	if m.hallName != "" {
		tabs = append(tabs, m.styles.HallBadge.Render("· "+m.hallName))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	calendarPane := m.calendarView.View()
	tablePane := m.bookingTable.View()
	if m.tableFocused {
		tablePane = lipgloss.NewStyle().Bold(true).Render("Bookings (focused)") + "\n" + tablePane
	} else {
		tablePane = m.styles.InactiveTab.Render("Bookings ('b' to focus)") + "\n" + tablePane
	}
	return m.styles.Doc.Render(lipgloss.JoinVertical(lipgloss.Left, calendarPane, "", tablePane))
}

func (m Model) viewForm() string {
	parts := []string{m.form.View()}
	if m.formError != "" {
		parts = append(parts, m.styles.ErrorNotice.Render(m.formError))
	}
	return m.styles.Doc.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Danger.Render(m.deleteMessage),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmStatus() string {
	lines := []string{
		"Change booking status to:",
		"",
	}
	for i, next := range constants.ValidStatusTransitions[m.statusTarget.Status] {
		lines = append(lines, lipgloss.NewStyle().Render(
			"["+string(rune('1'+i))+"] "+string(next)))
	}
	lines = append(lines, "", "[esc] Cancel")
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func (m Model) viewNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return m.styles.ErrorNotice.Render(m.notice)
	}
	return m.styles.Notice.Render(m.notice)
}
