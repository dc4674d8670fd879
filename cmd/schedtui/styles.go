package main

import "github.com/charmbracelet/lipgloss"

const (
	cellW     = 11 // width of each cycle column in characters
	labelW    = 8  // width of the qubit-label gutter
)

var (
	scheduleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1)

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9ece6a")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	cycleHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#565f89"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	cursorGateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)
