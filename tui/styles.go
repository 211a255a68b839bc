package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the terminal viewer
type Styles struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
	Preview      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		FocusedLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // Orange
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // Muted green
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("167")), // Muted red
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Preview: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
	}
}
