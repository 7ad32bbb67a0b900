package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckleypaul/avrup/internal/app"
	"github.com/buckleypaul/avrup/internal/avrdude"
	"github.com/buckleypaul/avrup/internal/board"
	"github.com/buckleypaul/avrup/internal/config"
	"github.com/buckleypaul/avrup/internal/platform"
	"github.com/buckleypaul/avrup/internal/store"
	"github.com/buckleypaul/avrup/internal/ui"
)

// Uploader runs one upload to completion.
type Uploader interface {
	Upload(req avrdude.Request) avrdude.Outcome
}

// Recorder persists upload results.
type Recorder interface {
	AddUpload(r store.UploadRecord) (store.UploadRecord, error)
}

type uploadFinishedMsg struct {
	req       avrdude.Request
	out       avrdude.Outcome
	recordErr error
}

type UploadPage struct {
	uploader  Uploader
	recorder  Recorder
	resolver  *platform.Resolver
	variant   board.Variant
	port      string
	firmware  string
	uploading bool
	last      *uploadFinishedMsg
	editing   bool
	input     textinput.Model
	message   string
	logHint   string
	width     int
	height    int
}

// NewUploadPage creates the upload page. resolver is only used to show the
// toolchain paths; recorder may be nil.
func NewUploadPage(cfg *config.Config, u Uploader, recorder Recorder, resolver *platform.Resolver) *UploadPage {
	ti := textinput.New()
	ti.Placeholder = "path/to/firmware.hex"
	ti.CharLimit = 512
	return &UploadPage{
		uploader: u,
		recorder: recorder,
		resolver: resolver,
		variant:  board.ParseVariant(cfg.DefaultBoard),
		port:     cfg.SerialPort,
		firmware: cfg.Firmware,
		input:    ti,
	}
}

// SetLogHint sets where avrdude's diagnostic output can be found.
func (p *UploadPage) SetLogHint(hint string) {
	p.logHint = hint
}

func (p *UploadPage) Init() tea.Cmd { return nil }

func (p *UploadPage) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case app.BoardSelectedMsg:
		p.variant = msg.Variant
		return p, nil

	case app.PortSelectedMsg:
		p.port = msg.Port
		return p, nil

	case app.FirmwareChangedMsg:
		p.firmware = msg.Path
		return p, nil

	case uploadFinishedMsg:
		p.uploading = false
		p.last = &msg
		p.message = ""
		if msg.recordErr != nil {
			p.message = fmt.Sprintf("Could not save history: %v", msg.recordErr)
			return p, nil
		}
		return p, func() tea.Msg { return app.UploadRecordedMsg{} }

	case tea.KeyMsg:
		if p.editing {
			switch msg.String() {
			case "enter":
				p.editing = false
				p.input.Blur()
				path := strings.TrimSpace(p.input.Value())
				p.firmware = path
				return p, func() tea.Msg { return app.FirmwareChangedMsg{Path: path} }
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
		case "e":
			p.editing = true
			p.input.SetValue(p.firmware)
			return p, p.input.Focus()
		case "u", "enter":
			return p, p.startUpload()
		}
	}
	return p, nil
}

func (p *UploadPage) startUpload() tea.Cmd {
	switch {
	case p.uploading:
		p.message = "An upload is already running"
		return nil
	case p.port == "":
		p.message = "No serial port selected (Ports page)"
		return nil
	case p.firmware == "":
		p.message = "No firmware selected (press e)"
		return nil
	case p.uploader == nil:
		p.message = "Uploader not configured"
		return nil
	}

	p.uploading = true
	p.message = ""
	req := avrdude.Request{Variant: p.variant, Port: p.port, Firmware: p.firmware}
	u, rec := p.uploader, p.recorder
	return func() tea.Msg {
		start := time.Now()
		out := u.Upload(req)
		msg := uploadFinishedMsg{req: req, out: out}
		if rec != nil {
			_, msg.recordErr = rec.AddUpload(store.NewUploadRecord(req, out, start))
		}
		return msg
	}
}

func (p *UploadPage) View() string {
	var b strings.Builder

	params := board.SelectParameters(p.variant)
	b.WriteString(ui.Field("Board", p.variant.String()) + "\n")
	b.WriteString(ui.Field("Programmer", strings.TrimSpace(params.Part+" "+params.Protocol+" "+params.Erase)) + "\n")
	b.WriteString(ui.Field("Port", p.port) + "\n")
	b.WriteString(ui.Field("Firmware", p.firmware) + "\n")
	if p.resolver != nil {
		tc := p.resolver.ResolvePaths()
		b.WriteString("\n")
		b.WriteString(ui.Field("Host", p.resolver.Host().String()) + "\n")
		health := platform.Check(tc)
		b.WriteString(ui.Field("avrdude", tc.Executable+missing(tc.Executable, health.ExecutableFound)) + "\n")
		b.WriteString(ui.Field("Config", tc.Config+missing(tc.Config, health.ConfigFound)) + "\n")
	}

	if p.editing {
		b.WriteString("\n  Firmware path:\n  " + p.input.View() + "\n")
	}

	b.WriteString("\n")
	switch {
	case p.uploading:
		b.WriteString(ui.AccentStyle.Render("Uploading..."))
	case p.last != nil:
		out := p.last.out
		b.WriteString(ui.OutcomeBadge(out.Succeeded, out.ExitCode))
		b.WriteString(fmt.Sprintf("  %s → %s in %s", p.last.req.Variant, p.last.req.Port, out.Duration.Round(time.Millisecond)))
		if out.Err != nil {
			b.WriteString("\n" + ui.WarnStyle.Render(out.Err.Error()))
		}
	}
	if p.message != "" {
		b.WriteString("\n" + ui.WarnStyle.Render(p.message))
	}
	if p.logHint != "" {
		b.WriteString("\n" + ui.DimStyle.Render("avrdude output: "+p.logHint))
	}

	return ui.Panel("Upload", b.String(), p.width, 0, !p.uploading)
}

func missing(path string, found bool) string {
	if path == "" || found {
		return ""
	}
	return " " + ui.WarnStyle.Render("(missing)")
}

func (p *UploadPage) Name() string { return "Upload" }

func (p *UploadPage) ShortHelp() []key.Binding {
	if p.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "set firmware")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "firmware")),
	}
}

func (p *UploadPage) InputCaptured() bool {
	return p.editing
}

func (p *UploadPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}
