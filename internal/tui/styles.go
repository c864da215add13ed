package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorBlue   = lipgloss.Color("39")
	ColorNavy   = lipgloss.Color("17")
	ColorGray   = lipgloss.Color("244")
	ColorOrange = lipgloss.Color("208")
	ColorGreen  = lipgloss.Color("42")
	ColorWhite  = lipgloss.Color("255")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorNavy).
			Bold(true).
			Padding(0, 1)

	tabStyle       = lipgloss.NewStyle().Foreground(ColorGray)
	activeTabStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	doneTabStyle   = lipgloss.NewStyle().Foreground(ColorWhite)

	bodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBlue).
			Padding(0, 1)

	sectionTitleStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(ColorGray)
	pausedStyle       = lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	runningStyle      = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
)
