package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckleypaul/avrup/internal/board"
)

// PageID identifies each page in the application.
type PageID int

const (
	UploadPage PageID = iota
	PortsPage
	HistoryPage
	SettingsPage
)

var PageOrder = []PageID{
	UploadPage,
	PortsPage,
	HistoryPage,
	SettingsPage,
}

// Page is the interface every page in the application implements.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Page, tea.Cmd)
	View() string
	Name() string
	ShortHelp() []key.Binding
	SetSize(width, height int)
}

// InputCapturer is an optional interface for pages with text inputs.
// When InputCaptured returns true, the app forwards all keys directly
// to the page instead of processing shortcuts like q, ?, b, etc.
type InputCapturer interface {
	InputCaptured() bool
}

// BoardSelectedMsg is broadcast to all pages when a board variant is chosen.
type BoardSelectedMsg struct {
	Variant board.Variant
}

// PortSelectedMsg is broadcast to all pages when a serial port is chosen.
// Port is the bare name without the /dev/ prefix.
type PortSelectedMsg struct {
	Port string
}

// FirmwareChangedMsg is broadcast when the firmware path changes.
type FirmwareChangedMsg struct {
	Path string
}

// UploadRecordedMsg is broadcast after an upload has been written to history.
type UploadRecordedMsg struct{}
