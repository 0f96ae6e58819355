package cli

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#5FAFAF")
	subtleColor = lipgloss.Color("#666666")
	warnColor   = lipgloss.Color("#D7AF5F")

	weekStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	deloadStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(subtleColor)

	keyStyle = lipgloss.NewStyle().
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor)
)
