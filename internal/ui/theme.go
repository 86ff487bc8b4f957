package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the status-chip and highlight styles the process list and
// status bar render with.
type Theme struct {
	successStyle    lipgloss.Style
	otherStyle      lipgloss.Style
	failedStyle     lipgloss.Style
	highlightStyle  lipgloss.Style
	chromeTextStyle lipgloss.Style
}

// DefaultTheme mirrors the original's fixed palette: green for success,
// dark gray for everything in-progress, red for failure, and a reversed
// highlight for the focused row.
func DefaultTheme() Theme {
	return Theme{
		successStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		otherStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		failedStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		highlightStyle:  lipgloss.NewStyle().Reverse(true),
		chromeTextStyle: lipgloss.NewStyle(),
	}
}

// ChipStyle returns the style for a status chip, classified success/
// failure/other the same way Status.IsSuccess/IsFailure do.
func (t Theme) ChipStyle(isSuccess, isFailure bool) lipgloss.Style {
	switch {
	case isSuccess:
		return t.successStyle
	case isFailure:
		return t.failedStyle
	default:
		return t.otherStyle
	}
}
