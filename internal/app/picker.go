package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buckleypaul/avrup/internal/board"
	"github.com/buckleypaul/avrup/internal/ui"
)

// PickerItem represents a selectable item in the picker.
type PickerItem struct {
	Label string
	Value string
	Desc  string
}

// PickerSelectedMsg is sent when the user selects an item.
type PickerSelectedMsg struct {
	Value string
}

// PickerClosedMsg is sent when the user closes the picker without selecting.
type PickerClosedMsg struct{}

// Picker is a filtered-list overlay.
type Picker struct {
	title    string
	noun     string
	items    []PickerItem
	filtered []PickerItem
	input    textinput.Model
	cursor   int
	width    int
	height   int
}

const maxPickerItems = 10

// NewPicker creates a picker overlay. noun is used in the footer count.
func NewPicker(title, noun string) *Picker {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 64

	return &Picker{
		title: title,
		noun:  noun,
		input: ti,
	}
}

// NewBoardPicker lists every board variant with its avrdude part and
// programmer.
func NewBoardPicker() *Picker {
	p := NewPicker("Select Board", "boards")
	var items []PickerItem
	for _, v := range board.Variants {
		params := board.SelectParameters(v)
		items = append(items, PickerItem{
			Label: v.String(),
			Value: v.String(),
			Desc:  strings.TrimPrefix(params.Part, "-p") + " / " + strings.TrimPrefix(params.Protocol, "-c"),
		})
	}
	p.SetItems(items)
	return p
}

// SetItems populates the picker with items.
func (p *Picker) SetItems(items []PickerItem) {
	p.items = items
	p.filter()
}

// SetSize sets the available dimensions.
func (p *Picker) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Update handles input for the picker.
func (p *Picker) Update(msg tea.Msg) (*Picker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return p, func() tea.Msg { return PickerClosedMsg{} }
		case "enter":
			if p.cursor < len(p.filtered) {
				value := p.filtered[p.cursor].Value
				return p, func() tea.Msg { return PickerSelectedMsg{Value: value} }
			}
			return p, nil
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down":
			if p.cursor < len(p.filtered)-1 {
				p.cursor++
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.filter()
	return p, cmd
}

// View renders the picker overlay.
func (p *Picker) View() string {
	boxWidth := p.width - 4
	if boxWidth > 50 {
		boxWidth = 50
	}
	if boxWidth < 30 {
		boxWidth = 30
	}
	innerWidth := boxWidth - 4

	var b strings.Builder
	p.input.Width = innerWidth - 3
	b.WriteString(ui.TitleStyle.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	// Scroll window around cursor
	visible := maxPickerItems
	if visible > len(p.filtered) {
		visible = len(p.filtered)
	}
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := start + visible

	selected := lipgloss.NewStyle().Foreground(ui.Primary).Bold(true)
	for i := start; i < end; i++ {
		item := p.filtered[i]
		line := item.Label
		if item.Desc != "" {
			line = fmt.Sprintf("%-10s %s", item.Label, ui.DimStyle.Render(item.Desc))
		}
		if i == p.cursor {
			b.WriteString(selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if len(p.filtered) == 0 {
		b.WriteString(ui.DimStyle.Render("  No matches"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.DimStyle.Render(fmt.Sprintf("(%d/%d %s)  esc:close", len(p.filtered), len(p.items), p.noun)))

	return lipgloss.NewStyle().
		Width(boxWidth).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ui.Primary).
		Padding(0, 1).
		Render(b.String())
}

func (p *Picker) filter() {
	query := strings.ToLower(p.input.Value())
	if query == "" {
		p.filtered = p.items
	} else {
		p.filtered = nil
		for _, item := range p.items {
			if fuzzyMatch(strings.ToLower(item.Label), query) {
				p.filtered = append(p.filtered, item)
			}
		}
	}
	if p.cursor >= len(p.filtered) {
		p.cursor = len(p.filtered) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// fuzzyMatch checks if all characters in query appear in s in order.
func fuzzyMatch(s, query string) bool {
	qi := 0
	for i := 0; i < len(s) && qi < len(query); i++ {
		if s[i] == query[qi] {
			qi++
		}
	}
	return qi == len(query)
}
