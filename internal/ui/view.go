package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwilliamson/mintaka/internal/supervisor"
)

// minProcessListWidth bounds how narrow the process list column can get
// before it stops being readable.
const minProcessListWidth = 20

// Render draws the full chrome: a vertical split of the main area (process
// list + focused pane) over a one-line status bar, mirroring the
// original's Fill(1)/Length(1) layout.
func Render(sup *supervisor.Supervisor, theme Theme, width, height int) string {
	if height < 2 {
		height = 2
	}
	mainHeight := height - 1

	listWidth := width / 5
	if listWidth < minProcessListWidth {
		listWidth = minProcessListWidth
	}
	if listWidth > width-10 {
		listWidth = width - 10
	}
	paneWidth := width - listWidth

	list := renderProcessList(sup, theme, listWidth, mainHeight)
	pane := renderPane(sup, paneWidth, mainHeight)
	main := lipgloss.JoinHorizontal(lipgloss.Top, list, pane)

	statusBar := renderStatusBar(sup, width)

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func renderProcessList(sup *supervisor.Supervisor, theme Theme, width, height int) string {
	var b strings.Builder
	for i, summary := range sup.Processes() {
		nameLine := summary.Name
		chip := summary.Status.Chip()
		isSuccess := summary.Status.IsSuccess()
		isFailure := summary.Status.IsFailure()
		chipLine := theme.ChipStyle(isSuccess, isFailure).Render(chip)

		if i == sup.FocusedProcessIndex() {
			nameLine = theme.highlightStyle.Render(padTo(nameLine, width))
		}
		b.WriteString(nameLine)
		b.WriteByte('\n')
		b.WriteString(chipLine)
		b.WriteByte('\n')
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func renderPane(sup *supervisor.Supervisor, width, height int) string {
	contents := sup.ScreenContents()
	if contents.Kind == supervisor.ScreenError {
		return lipgloss.NewStyle().Width(width).Height(height).Render("error: " + contents.ErrorMsg)
	}

	var b strings.Builder
	for _, line := range contents.Lines {
		b.WriteString(line.Text)
		b.WriteByte('\n')
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func renderStatusBar(sup *supervisor.Supervisor, width int) string {
	focusLabel := "Focus: Manual"
	if sup.AutofocusEnabled() {
		focusLabel = "Focus: Auto"
	}
	modeLabel := modeName(sup.Mode())
	return lipgloss.NewStyle().Width(width).Render(fmt.Sprintf("%s  %s", focusLabel, modeLabel))
}

func modeName(mode supervisor.Mode) string {
	switch mode {
	case supervisor.ModeForwardInput:
		return "Mode: Input"
	case supervisor.ModeHistory:
		return "Mode: History"
	default:
		return ""
	}
}

func padTo(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
