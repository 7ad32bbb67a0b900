package pages

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckleypaul/avrup/internal/app"
	"github.com/buckleypaul/avrup/internal/board"
	"github.com/buckleypaul/avrup/internal/config"
)

func fieldIndex(t *testing.T, key string) int {
	t.Helper()
	for i, f := range settingFields {
		if f.key == key {
			return i
		}
	}
	t.Fatalf("no setting field %q", key)
	return -1
}

func editField(p *SettingsPage, idx int, value string) tea.Cmd {
	p.cursor = idx
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p.input.SetValue(value)
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestSettingsArrowKeyNavigation(t *testing.T) {
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, t.TempDir())

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Fatalf("expected cursor=1 after down, got %d", p.cursor)
	}

	for i := 0; i < len(settingFields)+2; i++ {
		p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if p.cursor != len(settingFields)-1 {
		t.Fatalf("expected cursor to clamp at %d, got %d", len(settingFields)-1, p.cursor)
	}

	p.cursor = 0
	p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Fatalf("expected cursor to clamp at 0, got %d", p.cursor)
	}
}

func TestSettingsEditModeCapturesInput(t *testing.T) {
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, t.TempDir())

	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !p.InputCaptured() {
		t.Fatal("expected editing after enter")
	}
	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.InputCaptured() {
		t.Fatal("expected editing to end after esc")
	}
}

func TestSettingsBoardEmitsSelection(t *testing.T) {
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, t.TempDir())

	cmd := editField(p, fieldIndex(t, "default_board"), "Mega")
	if cmd == nil {
		t.Fatal("expected BoardSelectedMsg command")
	}
	msg, ok := cmd().(app.BoardSelectedMsg)
	if !ok || msg.Variant != board.Mega {
		t.Fatalf("expected BoardSelectedMsg{mega}, got %#v", cmd())
	}

	if cmd := editField(p, fieldIndex(t, "default_board"), "leonardo"); cmd != nil {
		t.Fatal("expected unknown board to be rejected")
	}
}

func TestSettingsLogLevelValidated(t *testing.T) {
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, t.TempDir())
	idx := fieldIndex(t, "log_level")

	editField(p, idx, "loud")
	if cfg.LogLevel != config.DefaultLogLevel {
		t.Fatalf("invalid level should be ignored, got %q", cfg.LogLevel)
	}
	editField(p, idx, "DEBUG")
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug, got %q", cfg.LogLevel)
	}
}

func TestSettingsSaveWritesWorkspaceConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ws := t.TempDir()
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, ws)

	editField(p, fieldIndex(t, "toolchain_dir"), "/opt/arduino")
	p.Update(runeKey('s'))

	if _, err := os.Stat(filepath.Join(ws, config.DirName, "config.json")); err != nil {
		t.Fatalf("expected workspace config written: %v", err)
	}
	if got := config.Load(ws).ToolchainDir; got != "/opt/arduino" {
		t.Errorf("expected toolchain dir persisted, got %q", got)
	}
}

func TestSettingsFollowsSelections(t *testing.T) {
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, t.TempDir())

	p.Update(app.PortSelectedMsg{Port: "ttyUSB1"})
	if cfg.SerialPort != "ttyUSB1" {
		t.Fatalf("expected port mirrored into config, got %q", cfg.SerialPort)
	}
}
