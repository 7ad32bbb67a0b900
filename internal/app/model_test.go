package app

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckleypaul/avrup/internal/board"
	"github.com/buckleypaul/avrup/internal/config"
)

type stubPage struct {
	name     string
	received []tea.Msg
	capture  bool
}

func (p *stubPage) Init() tea.Cmd { return nil }

func (p *stubPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	p.received = append(p.received, msg)
	return p, nil
}

func (p *stubPage) View() string { return p.name }
func (p *stubPage) Name() string { return p.name }
func (p *stubPage) ShortHelp() []key.Binding { return nil }
func (p *stubPage) SetSize(width, height int) {}
func (p *stubPage) InputCaptured() bool { return p.capture }

func newTestModel(t *testing.T) (Model, map[PageID]*stubPage, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	stubs := map[PageID]*stubPage{
		UploadPage:   {name: "Upload"},
		PortsPage:    {name: "Ports"},
		HistoryPage:  {name: "History"},
		SettingsPage: {name: "Settings"},
	}
	pages := map[PageID]Page{}
	for id, p := range stubs {
		pages[id] = p
	}
	cfg := config.Defaults()
	ws := t.TempDir()
	return New(pages, &cfg, ws), stubs, ws
}

func TestBoardSelectedBroadcastsAndPersists(t *testing.T) {
	m, stubs, ws := newTestModel(t)

	updated, cmd := m.Update(BoardSelectedMsg{Variant: board.Mega})
	m = updated.(Model)
	if cmd != nil {
		cmd()
	}

	if m.selectedBoard != "mega" {
		t.Fatalf("expected selected board mega, got %q", m.selectedBoard)
	}
	for id, p := range stubs {
		if len(p.received) != 1 {
			t.Errorf("page %d expected 1 message, got %d", id, len(p.received))
		}
	}
	if got := config.Load(ws).DefaultBoard; got != "mega" {
		t.Errorf("expected board persisted to workspace config, got %q", got)
	}
}

func TestPortSelectedPersists(t *testing.T) {
	m, _, ws := newTestModel(t)

	updated, _ := m.Update(PortSelectedMsg{Port: "ttyACM0"})
	m = updated.(Model)

	if m.selectedPort != "ttyACM0" {
		t.Fatalf("expected selected port ttyACM0, got %q", m.selectedPort)
	}
	if got := config.Load(ws).SerialPort; got != "ttyACM0" {
		t.Errorf("expected port persisted, got %q", got)
	}
}

func TestPickerSelectionBecomesBoardSelected(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.picker = NewBoardPicker()

	updated, cmd := m.Update(PickerSelectedMsg{Value: "bob3"})
	m = updated.(Model)
	if m.picker != nil {
		t.Fatal("expected picker to close")
	}
	if cmd == nil {
		t.Fatal("expected follow-up command")
	}
	msg, ok := cmd().(BoardSelectedMsg)
	if !ok {
		t.Fatalf("expected BoardSelectedMsg, got %T", cmd())
	}
	if msg.Variant != board.Bob3 {
		t.Fatalf("expected bob3, got %s", msg.Variant)
	}
}

func TestBoardKeyOpensPickerFromNav(t *testing.T) {
	m, _, _ := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	m = updated.(Model)
	if m.picker == nil {
		t.Fatal("expected board picker to open")
	}
}

func TestKeysGoToActivePageWhenFocused(t *testing.T) {
	m, stubs, _ := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.focus != FocusContent {
		t.Fatal("expected content focus after tab")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	if len(stubs[UploadPage].received) != 1 {
		t.Fatalf("expected upload page to receive key, got %d msgs", len(stubs[UploadPage].received))
	}
	if len(stubs[PortsPage].received) != 0 {
		t.Fatal("inactive page should not receive keys")
	}
}

func TestInputCaptureSwallowsQuit(t *testing.T) {
	m, stubs, _ := newTestModel(t)
	stubs[UploadPage].capture = true
	m.focus = FocusContent

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("q should be forwarded to the capturing page, not quit")
		}
	}
	if len(stubs[UploadPage].received) != 1 {
		t.Fatal("expected capturing page to receive the key")
	}
}

func TestNavigationWraps(t *testing.T) {
	m, _, _ := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	if m.activePage != SettingsPage {
		t.Fatalf("expected wrap to settings page, got %d", m.activePage)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	if m.activePage != UploadPage {
		t.Fatalf("expected wrap back to upload page, got %d", m.activePage)
	}
}
