package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorMantle).
			Bold(true).
			Padding(0, 1)
	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	sectionStyle   = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	rowStyle       = lipgloss.NewStyle().Foreground(colorText)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorAccent).Background(colorSurface0).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	creditStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	debitStyle     = lipgloss.NewStyle().Foreground(colorText)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	statusStyle    = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle).Padding(0, 1)
	detailKeyStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(10)
)
