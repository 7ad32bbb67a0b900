package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel renders a rounded box with title embedded in the top border.
// width is the total outer width; height=0 means auto-height.
func Panel(title, content string, width, height int, focused bool) string {
	borderColor := Subtle
	if focused {
		borderColor = Primary
	}
	colorStyle := lipgloss.NewStyle().Foreground(borderColor)

	// ╭─ TITLE ─...─╮ spans width
	dashCount := width - lipgloss.Width(title) - 5
	if dashCount < 0 {
		dashCount = 0
	}
	top := colorStyle.Render("╭─ ") + title + colorStyle.Render(" "+strings.Repeat("─", dashCount)+"╮")

	innerWidth := width - 4
	if innerWidth < 0 {
		innerWidth = 0
	}
	body := lipgloss.NewStyle().
		Width(innerWidth).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderTop(false).
		BorderLeft(true).
		BorderRight(true).
		BorderBottom(true).
		BorderForeground(borderColor).
		Padding(0, 1)
	if height > 0 {
		body = body.Height(height - 2)
	}
	return top + "\n" + body.Render(content)
}

// Title renders a styled page title.
func Title(text string) string {
	return TitleStyle.Render(text)
}

// Field renders a "label  value" row; empty values show as (not set).
func Field(label, value string) string {
	if value == "" {
		value = DimStyle.Render("(not set)")
	}
	return LabelStyle.Render(label) + " " + value
}

// BarKey renders a key hint for the status bar.
func BarKey(k, desc string) string {
	return BarKeyStyle.Render(k) + BarStyle.Render(":"+desc)
}

// Badge renders a small colored badge.
func Badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(color).
		Padding(0, 1).
		Render(text)
}

// OutcomeBadge renders OK for success and FAILED (exit N) otherwise.
// A negative exit code means the tool never ran.
func OutcomeBadge(success bool, exitCode int) string {
	if success {
		return Badge("OK", Success)
	}
	if exitCode < 0 {
		return Badge("NOT RUN", Warning)
	}
	return Badge(fmt.Sprintf("FAILED (exit %d)", exitCode), Error)
}
