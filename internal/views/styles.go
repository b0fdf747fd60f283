package views

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the views draw with.
const (
	colourRed      = lipgloss.Color("#f38ba8")
	colourPeach    = lipgloss.Color("#fab387")
	colourYellow   = lipgloss.Color("#f9e2af")
	colourGreen    = lipgloss.Color("#a6e3a1")
	colourTeal     = lipgloss.Color("#94e2d5")
	colourBlue     = lipgloss.Color("#89b4fa")
	colourMauve    = lipgloss.Color("#cba6f7")
	colourText     = lipgloss.Color("#cdd6f4")
	colourSubtext0 = lipgloss.Color("#a6adc8")
	colourOverlay1 = lipgloss.Color("#7f849c")
	colourSurface1 = lipgloss.Color("#45475a")
	colourSurface0 = lipgloss.Color("#313244")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colourGreen).
			Background(colourSurface0).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colourBlue)

	labelStyle = lipgloss.NewStyle().
			Foreground(colourSubtext0)

	textStyle = lipgloss.NewStyle().
			Foreground(colourText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colourOverlay1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colourMauve)

	successStyle = lipgloss.NewStyle().
			Foreground(colourGreen)

	warningStyle = lipgloss.NewStyle().
			Foreground(colourYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colourRed).
			Bold(true)

	defaultBadgeStyle = lipgloss.NewStyle().
				Foreground(colourPeach)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	highlightStyle = lipgloss.NewStyle().
			Background(colourSurface1).
			Foreground(colourTeal)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colourSurface1).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(colourBlue)

	helpStyle = lipgloss.NewStyle().
			Foreground(colourOverlay1).
			Padding(0, 1)
)

func panel(focused bool) lipgloss.Style {
	if focused {
		return focusedPanelStyle
	}
	return panelStyle
}
