package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	yearStyle = lipgloss.NewStyle().
			Bold(true).
			Width(6)

	completeStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	missingStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)
