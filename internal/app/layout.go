package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/buckleypaul/avrup/internal/ui"
)

const navWidth = 18 // 16 content + border/padding

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func renderSelectionBar(boardName, port string, width int, navFocused bool) string {
	content := fmt.Sprintf("Board: %s  Port: %s", orNone(boardName), orNone(port))
	if navFocused {
		content += ui.DimStyle.Render("  [b] change board")
	}
	return ui.BarStyle.Width(width).Render(content)
}

func renderNav(pages []PageID, active PageID, pageMap map[PageID]Page, height int, focused bool) string {
	var b strings.Builder
	if focused {
		b.WriteString(ui.BoldStyle.Render("avrup"))
	} else {
		b.WriteString(ui.TitleStyle.Render("avrup"))
	}
	b.WriteString("\n\n")

	for _, id := range pages {
		p, ok := pageMap[id]
		if !ok {
			continue
		}
		if id == active {
			b.WriteString(ui.NavActiveStyle.Render("▸ " + p.Name()))
		} else {
			b.WriteString(ui.NavItemStyle.Render("  " + p.Name()))
		}
		b.WriteString("\n")
	}

	style := ui.NavStyle.Height(height)
	if focused {
		style = style.BorderForeground(ui.Primary)
	}
	return style.Render(b.String())
}

func renderStatusBar(pageHelp []key.Binding, width int, focus FocusArea) string {
	var parts []string
	if focus == FocusNav {
		parts = append(parts,
			ui.BarKey("↑/↓", "navigate"),
			ui.BarKey("enter", "select"),
			ui.BarKey("b", "board"),
		)
	} else {
		for _, kb := range pageHelp {
			if kb.Enabled() {
				parts = append(parts, ui.BarKey(kb.Help().Key, kb.Help().Desc))
			}
		}
	}
	parts = append(parts,
		ui.BarKey("tab", "focus"),
		ui.BarKey("?", "help"),
		ui.BarKey("q", "quit"),
	)
	return ui.BarStyle.Width(width).Render(strings.Join(parts, "  "))
}

func renderHelp() string {
	lines := []string{
		ui.Title("Keys"),
		ui.Field("tab", "switch between navigation and page"),
		ui.Field("↑/↓", "move between pages"),
		ui.Field("b", "pick board variant"),
		ui.Field("u", "upload (Upload page)"),
		ui.Field("e", "edit firmware path (Upload page)"),
		ui.Field("r", "rescan ports (Ports page)"),
		ui.Field("q", "quit"),
	}
	return strings.Join(lines, "\n")
}

func renderLayout(selectionBar, nav, content, statusBar string) string {
	main := lipgloss.JoinHorizontal(lipgloss.Top, nav, content)
	return lipgloss.JoinVertical(lipgloss.Left, selectionBar, main, statusBar)
}
