package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/koscakluka/astra/core/interaction"
)

var (
	primaryColor   = lipgloss.Color("#22d3ee")
	secondaryColor = lipgloss.Color("#a855f7")
	emeraldColor   = lipgloss.Color("#10b981")
	mutedColor     = lipgloss.Color("#6b7280")
	dangerColor    = lipgloss.Color("#ef4444")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	statusStyle = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
	dataPanelStyle = panelStyle.BorderForeground(emeraldColor)
	taskPanelStyle = panelStyle.BorderForeground(primaryColor)

	dataTitleStyle = lipgloss.NewStyle().Foreground(emeraldColor).Bold(true)
	dataValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6ee7b7"))
	taskTitleStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)

	commandStyle  = lipgloss.NewStyle().Foreground(primaryColor)
	responseStyle = lipgloss.NewStyle().Foreground(emeraldColor)
	errorStyle    = lipgloss.NewStyle().Foreground(dangerColor)
)

func orbColor(state interaction.OrbState) lipgloss.Color {
	switch state {
	case interaction.OrbStateListening:
		return primaryColor
	case interaction.OrbStateProcessing:
		return secondaryColor
	case interaction.OrbStateSpeaking:
		return emeraldColor
	default:
		return mutedColor
	}
}
