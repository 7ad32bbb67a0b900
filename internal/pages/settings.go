package pages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/buckleypaul/avrup/internal/app"
	"github.com/buckleypaul/avrup/internal/board"
	"github.com/buckleypaul/avrup/internal/config"
	"github.com/buckleypaul/avrup/internal/ui"
)

type settingField struct {
	label string
	key   string
}

var settingFields = []settingField{
	{"Default Board", "default_board"},
	{"Serial Port", "serial_port"},
	{"Firmware", "firmware"},
	{"Properties File", "properties_file"},
	{"Toolchain Dir", "toolchain_dir"},
	{"Log Level", "log_level"},
}

type SettingsPage struct {
	cfg           *config.Config
	workspaceRoot string
	cursor        int
	editing       bool
	input         textinput.Model
	width, height int
	message       string
}

func NewSettingsPage(cfg *config.Config, workspaceRoot string) *SettingsPage {
	ti := textinput.New()
	ti.CharLimit = 256
	return &SettingsPage{
		cfg:           cfg,
		workspaceRoot: workspaceRoot,
		input:         ti,
	}
}

func (p *SettingsPage) Init() tea.Cmd { return nil }

func (p *SettingsPage) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case app.BoardSelectedMsg:
		p.cfg.DefaultBoard = msg.Variant.String()
	case app.PortSelectedMsg:
		p.cfg.SerialPort = msg.Port
	case app.FirmwareChangedMsg:
		p.cfg.Firmware = msg.Path

	case tea.KeyMsg:
		if p.editing {
			switch msg.String() {
			case "enter":
				cmd := p.applyValue(strings.TrimSpace(p.input.Value()))
				p.editing = false
				p.input.Blur()
				return p, cmd
			case "esc":
				p.editing = false
				p.input.Blur()
				return p, nil
			}
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}

		switch msg.String() {
		case "down":
			if p.cursor < len(settingFields)-1 {
				p.cursor++
			}
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "enter", "e":
			p.editing = true
			p.input.SetValue(p.getValue(p.cursor))
			return p, p.input.Focus()
		case "s":
			if err := config.Save(*p.cfg, p.workspaceRoot, false); err != nil {
				p.message = fmt.Sprintf("Error saving: %v", err)
			} else {
				p.message = "Settings saved to workspace"
			}
		}
	}
	return p, nil
}

func (p *SettingsPage) View() string {
	var inner strings.Builder

	for i, f := range settingFields {
		cursor := "  "
		if i == p.cursor {
			cursor = ui.BoldStyle.Render("> ")
		}

		val := p.getValue(i)
		if val == "" {
			val = ui.DimStyle.Render("(not set)")
		}

		inner.WriteString(fmt.Sprintf("%s%-20s %s\n", cursor, f.label, val))
	}

	inner.WriteString("\n" + ui.DimStyle.Render("Properties: "+p.cfg.PropertiesPath(p.workspaceRoot)) + "\n")

	if p.editing {
		inner.WriteString("\n")
		inner.WriteString(fmt.Sprintf("  Edit %s:\n", settingFields[p.cursor].label))
		inner.WriteString("  " + p.input.View())
		inner.WriteString("\n")
	}

	if p.message != "" {
		inner.WriteString("\n  " + p.message)
	}

	return ui.Panel("Settings", inner.String(), p.width, 0, false)
}

func (p *SettingsPage) Name() string { return "Settings" }

func (p *SettingsPage) ShortHelp() []key.Binding {
	if p.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save to disk")),
	}
}

func (p *SettingsPage) InputCaptured() bool {
	return p.editing
}

func (p *SettingsPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *SettingsPage) getValue(idx int) string {
	switch settingFields[idx].key {
	case "default_board":
		return p.cfg.DefaultBoard
	case "serial_port":
		return p.cfg.SerialPort
	case "firmware":
		return p.cfg.Firmware
	case "properties_file":
		return p.cfg.PropertiesFile
	case "toolchain_dir":
		return p.cfg.ToolchainDir
	case "log_level":
		return p.cfg.LogLevel
	}
	return ""
}

// applyValue updates the field under the cursor. Board, port and firmware
// changes are returned as selection messages so the other pages follow.
func (p *SettingsPage) applyValue(val string) tea.Cmd {
	f := settingFields[p.cursor]
	p.message = fmt.Sprintf("%s updated", f.label)

	switch f.key {
	case "default_board":
		v := board.ParseVariant(val)
		if v == board.Unknown && val != "" && !strings.EqualFold(val, board.Unknown.String()) {
			p.message = fmt.Sprintf("Unknown board %q", val)
			return nil
		}
		return func() tea.Msg { return app.BoardSelectedMsg{Variant: v} }
	case "serial_port":
		return func() tea.Msg { return app.PortSelectedMsg{Port: val} }
	case "firmware":
		return func() tea.Msg { return app.FirmwareChangedMsg{Path: val} }
	case "properties_file":
		p.cfg.PropertiesFile = val
		p.message += " (restart to reload)"
	case "toolchain_dir":
		p.cfg.ToolchainDir = val
		p.message += " (restart to reload)"
	case "log_level":
		lvl, err := logrus.ParseLevel(val)
		if err != nil {
			p.message = fmt.Sprintf("Invalid log level %q", val)
			return nil
		}
		p.cfg.LogLevel = lvl.String()
		logrus.SetLevel(lvl)
	}
	return nil
}
