package tui

import "github.com/charmbracelet/lipgloss"

// Styles is the dashboard chrome, built once from the persisted theme.
type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	HallBadge   lipgloss.Style
	Doc         lipgloss.Style
	Notice      lipgloss.Style
	ErrorNotice lipgloss.Style
	Danger      lipgloss.Style
}

func NewStyles(theme string) Styles {
	accent := lipgloss.Color("205")
	surface := lipgloss.Color("236")
	muted := lipgloss.Color("240")
	if theme == "light" {
		accent = lipgloss.Color("162")
		surface = lipgloss.Color("254")
		muted = lipgloss.Color("246")
	}

	return Styles{
		ActiveTab: lipgloss.NewStyle().
			Foreground(accent).
			Background(surface).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		HallBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("115")).
			Padding(0, 1),
		Doc: lipgloss.NewStyle().
			Margin(1, 2),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("115")).
			Padding(0, 1),
		ErrorNotice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Padding(0, 1),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true),
	}
}
