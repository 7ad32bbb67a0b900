package pages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckleypaul/avrup/internal/app"
	"github.com/buckleypaul/avrup/internal/store"
	"github.com/buckleypaul/avrup/internal/ui"
)

const historyLimit = 50

type historyLoadedMsg struct {
	records []store.UploadRecord
	err     error
}

type HistoryPage struct {
	store   *store.Store
	records []store.UploadRecord
	err     error
	width   int
	height  int
}

func NewHistoryPage(s *store.Store) *HistoryPage {
	return &HistoryPage{store: s}
}

func (p *HistoryPage) Init() tea.Cmd {
	return p.load()
}

func (p *HistoryPage) load() tea.Cmd {
	if p.store == nil {
		return nil
	}
	s := p.store
	return func() tea.Msg {
		records, err := s.RecentUploads(historyLimit)
		return historyLoadedMsg{records: records, err: err}
	}
}

func (p *HistoryPage) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		p.records = msg.records
		p.err = msg.err
	case app.UploadRecordedMsg:
		return p, p.load()
	case tea.KeyMsg:
		if msg.String() == "r" {
			return p, p.load()
		}
	}
	return p, nil
}

func (p *HistoryPage) View() string {
	var b strings.Builder
	if p.err != nil {
		b.WriteString(ui.WarnStyle.Render(fmt.Sprintf("Could not read history: %v", p.err)))
	} else if len(p.records) == 0 {
		b.WriteString(ui.DimStyle.Render("No uploads yet."))
	}

	for _, r := range p.records {
		b.WriteString(fmt.Sprintf("%s  %-9s %-14s %s  %s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Board,
			r.Port,
			ui.OutcomeBadge(r.Success, r.ExitCode),
			ui.DimStyle.Render(r.Duration+"  "+r.Firmware),
		))
	}
	return ui.Panel("History", b.String(), p.width, 0, false)
}

func (p *HistoryPage) Name() string { return "History" }

func (p *HistoryPage) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (p *HistoryPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}
