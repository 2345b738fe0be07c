package app

import "github.com/charmbracelet/lipgloss"

// Color palette matching the fatih/color usage elsewhere in the CLI.
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}
)

var (
	// styleHeader is for section headings in command output.
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleLabel is for field labels in detail views.
	styleLabel = lipgloss.NewStyle().Foreground(colorCyan)

	// styleOK highlights successful counts.
	styleOK = lipgloss.NewStyle().Foreground(colorGreen)

	// styleDim is for secondary text like paths and ids.
	styleDim = lipgloss.NewStyle().Foreground(colorGray)

	// styleTag renders tag chips in listings.
	styleTag = lipgloss.NewStyle().Foreground(colorYellow)
)
