package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared styles for all screens.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	shardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))
)

// centerText centers text within the given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// difficultyColor returns a display color for a difficulty label.
func difficultyColor(difficulty string) lipgloss.Color {
	switch difficulty {
	case "Easy":
		return lipgloss.Color("42")
	case "Medium":
		return lipgloss.Color("214")
	case "Hard":
		return lipgloss.Color("196")
	default:
		return lipgloss.Color("245")
	}
}
