package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary = lipgloss.Color("36")  // Teal
	Accent  = lipgloss.Color("208") // Orange
	Success = lipgloss.Color("78")  // Green
	Warning = lipgloss.Color("214") // Amber
	Error   = lipgloss.Color("196") // Red
	Subtle  = lipgloss.Color("241") // Gray
	Surface = lipgloss.Color("236") // Dark gray
	Text    = lipgloss.Color("252") // Light gray
	TextDim = lipgloss.Color("245") // Dimmer text

	NavStyle = lipgloss.NewStyle().
			Width(16).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Surface).
			Padding(1, 1)

	NavItemStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			PaddingLeft(1)

	NavActiveStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			PaddingLeft(1)

	ContentStyle = lipgloss.NewStyle().
			Padding(1, 2)

	BarStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Background(Surface).
			Padding(0, 1)

	BarKeyStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Surface).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Width(12)

	BoldStyle   = lipgloss.NewStyle().Bold(true)
	DimStyle    = lipgloss.NewStyle().Foreground(TextDim)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent)
	WarnStyle   = lipgloss.NewStyle().Foreground(Warning)
)
