// Package earnings renders the revenue summary tab.
package earnings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hallbook/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Faint(true).Width(22)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

type Model struct {
	spinner spinner.Model
	summary models.RevenueSummary
	loaded  bool
}

func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{spinner: s}
}

// SetSummary installs a freshly fetched revenue summary.
func (m *Model) SetSummary(summary models.RevenueSummary) {
	m.summary = summary
	m.loaded = true
}

// Reset puts the tab back into its loading state for a refetch.
func (m *Model) Reset() {
	m.loaded = false
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return fmt.Sprintf("\n  %s Loading earnings...", m.spinner.View())
	}

	rows := []string{
		titleStyle.Render("Earnings"),
		"",
		labelStyle.Render("Total revenue") + valueStyle.Render(fmt.Sprintf("%.2f", m.summary.TotalRevenue)),
		labelStyle.Render("This month") + valueStyle.Render(fmt.Sprintf("%.2f", m.summary.MonthlyRevenue)),
		labelStyle.Render("Completed bookings") + valueStyle.Render(fmt.Sprintf("%d", m.summary.CompletedBookings)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) SetSize(width, height int) {}
