package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buckleypaul/avrup/internal/board"
	"github.com/buckleypaul/avrup/internal/config"
	"github.com/buckleypaul/avrup/internal/ui"
)

type FocusArea int

const (
	FocusNav FocusArea = iota
	FocusContent
)

type Model struct {
	pages         map[PageID]Page
	activePage    PageID
	focus         FocusArea
	width         int
	height        int
	showHelp      bool
	selectedBoard string
	selectedPort  string
	picker        *Picker
	cfg           *config.Config
	wsRoot        string
}

func New(pages map[PageID]Page, cfg *config.Config, wsRoot string) Model {
	return Model{
		pages:         pages,
		cfg:           cfg,
		wsRoot:        wsRoot,
		selectedBoard: cfg.DefaultBoard,
		selectedPort:  cfg.SerialPort,
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.pages {
		if cmd := p.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) contentSize() (int, int) {
	return m.width - navWidth, m.height - 2 // selection bar + status bar
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.contentSize()
		for _, p := range m.pages {
			p.SetSize(w, h)
		}
		return m, nil

	case PickerSelectedMsg:
		m.picker = nil
		v := board.ParseVariant(msg.Value)
		return m, func() tea.Msg { return BoardSelectedMsg{Variant: v} }

	case PickerClosedMsg:
		m.picker = nil
		return m, nil

	case BoardSelectedMsg:
		m.selectedBoard = msg.Variant.String()
		m.cfg.DefaultBoard = m.selectedBoard
		config.Save(*m.cfg, m.wsRoot, false)
		return m, m.broadcast(msg)

	case PortSelectedMsg:
		m.selectedPort = msg.Port
		m.cfg.SerialPort = msg.Port
		config.Save(*m.cfg, m.wsRoot, false)
		return m, m.broadcast(msg)

	case FirmwareChangedMsg:
		m.cfg.Firmware = msg.Path
		config.Save(*m.cfg, m.wsRoot, false)
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		// When picker is open, forward all keys to picker
		if m.picker != nil {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}

		// A page with an active text input gets every key; only ctrl+c quits.
		if m.focus == FocusContent {
			if ic, ok := m.pages[m.activePage].(InputCapturer); ok && ic.InputCaptured() {
				if msg.String() == "ctrl+c" {
					return m, tea.Quit
				}
				return m, m.updateActive(msg)
			}
		}

		switch {
		case key.Matches(msg, GlobalKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, GlobalKeys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, GlobalKeys.ToggleFocus):
			if m.focus == FocusNav {
				m.focus = FocusContent
			} else {
				m.focus = FocusNav
			}
			return m, nil
		}

		if m.focus == FocusNav {
			if key.Matches(msg, GlobalKeys.BoardPicker) {
				m.picker = NewBoardPicker()
				m.picker.SetSize(m.contentSize())
				return m, nil
			}
			switch msg.String() {
			case "up":
				m.prevPage()
			case "down":
				m.nextPage()
			case "enter", "right":
				m.focus = FocusContent
			}
			return m, nil
		}

		if msg.String() == "left" {
			m.focus = FocusNav
			return m, nil
		}
		return m, m.updateActive(msg)
	}

	// Non-key messages (command results, etc.) go to every page so the
	// response reaches whichever page started the command.
	return m, m.broadcast(msg)
}

func (m Model) updateActive(msg tea.Msg) tea.Cmd {
	page, ok := m.pages[m.activePage]
	if !ok {
		return nil
	}
	newPage, cmd := page.Update(msg)
	m.pages[m.activePage] = newPage
	return cmd
}

func (m Model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for id, page := range m.pages {
		newPage, cmd := page.Update(msg)
		m.pages[id] = newPage
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	w, h := m.contentSize()
	page := m.pages[m.activePage]

	var body string
	switch {
	case m.picker != nil:
		m.picker.SetSize(w, h)
		body = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.picker.View())
	case m.showHelp:
		body = ui.ContentStyle.Width(w).Height(h).Render(renderHelp())
	default:
		body = ui.ContentStyle.Width(w).Height(h).Render(page.View())
	}

	bar := renderSelectionBar(m.selectedBoard, m.selectedPort, m.width, m.focus == FocusNav)
	nav := renderNav(PageOrder, m.activePage, m.pages, h, m.focus == FocusNav)
	status := renderStatusBar(page.ShortHelp(), m.width, m.focus)
	return renderLayout(bar, nav, body, status)
}

func (m *Model) nextPage() {
	for i, id := range PageOrder {
		if id == m.activePage {
			m.activePage = PageOrder[(i+1)%len(PageOrder)]
			return
		}
	}
}

func (m *Model) prevPage() {
	for i, id := range PageOrder {
		if id == m.activePage {
			m.activePage = PageOrder[(i-1+len(PageOrder))%len(PageOrder)]
			return
		}
	}
}
