package pages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckleypaul/avrup/internal/app"
	"github.com/buckleypaul/avrup/internal/board"
	"github.com/buckleypaul/avrup/internal/serial"
	"github.com/buckleypaul/avrup/internal/ui"
)

// PortLister enumerates serial ports.
type PortLister func() ([]serial.PortInfo, error)

type portsLoadedMsg struct {
	ports []serial.PortInfo
	err   error
}

type PortsPage struct {
	list     PortLister
	all      []serial.PortInfo
	shown    []serial.PortInfo
	showAll  bool
	cursor   int
	loading  bool
	selected string
	err      error
	width    int
	height   int
}

// NewPortsPage creates the port browser. A nil lister uses serial.ListPorts.
func NewPortsPage(list PortLister, selected string) *PortsPage {
	if list == nil {
		list = serial.ListPorts
	}
	return &PortsPage{list: list, selected: selected}
}

func (p *PortsPage) Init() tea.Cmd {
	return p.scan()
}

func (p *PortsPage) scan() tea.Cmd {
	p.loading = true
	list := p.list
	return func() tea.Msg {
		ports, err := list()
		return portsLoadedMsg{ports: ports, err: err}
	}
}

func (p *PortsPage) refilter() {
	if p.showAll {
		p.shown = p.all
	} else {
		p.shown = serial.Candidates(p.all)
	}
	if p.cursor >= len(p.shown) {
		p.cursor = len(p.shown) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *PortsPage) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case portsLoadedMsg:
		p.loading = false
		p.err = msg.err
		p.all = msg.ports
		p.refilter()
		return p, nil

	case app.PortSelectedMsg:
		p.selected = msg.Port
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return p, p.scan()
		case "a":
			p.showAll = !p.showAll
			p.refilter()
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down":
			if p.cursor < len(p.shown)-1 {
				p.cursor++
			}
		case "enter":
			if p.cursor >= len(p.shown) {
				return p, nil
			}
			port := p.shown[p.cursor]
			name := port.ShortName()
			selectPort := func() tea.Msg { return app.PortSelectedMsg{Port: name} }
			if v := serial.GuessVariant(port); v != board.Unknown {
				return p, tea.Batch(selectPort, func() tea.Msg { return app.BoardSelectedMsg{Variant: v} })
			}
			return p, selectPort
		}
	}
	return p, nil
}

func (p *PortsPage) View() string {
	var b strings.Builder

	switch {
	case p.loading:
		b.WriteString(ui.DimStyle.Render("Scanning ports..."))
	case p.err != nil:
		b.WriteString(ui.WarnStyle.Render(fmt.Sprintf("Could not list ports: %v", p.err)))
	case len(p.shown) == 0 && !p.showAll:
		b.WriteString(ui.DimStyle.Render("No boards found. Press a to show every port."))
	case len(p.shown) == 0:
		b.WriteString(ui.DimStyle.Render("No serial ports found."))
	}

	for i, port := range p.shown {
		cursor := "  "
		if i == p.cursor {
			cursor = ui.BoldStyle.Render("> ")
		}
		marker := " "
		if port.ShortName() == p.selected {
			marker = ui.AccentStyle.Render("*")
		}
		desc := port.Product
		if port.IsUSB {
			desc = strings.TrimSpace(fmt.Sprintf("%s:%s %s", port.VID, port.PID, desc))
		}
		if v := serial.GuessVariant(port); v != board.Unknown {
			desc += " [" + v.String() + "]"
		}
		b.WriteString(fmt.Sprintf("%s%s %-24s %s\n", cursor, marker, port.Name, ui.DimStyle.Render(desc)))
	}

	title := "Ports"
	if p.showAll {
		title = "Ports (all)"
	}
	return ui.Panel(title, b.String(), p.width, 0, false)
}

func (p *PortsPage) Name() string { return "Ports" }

func (p *PortsPage) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all ports")),
	}
}

func (p *PortsPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}
