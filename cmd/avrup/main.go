package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"github.com/buckleypaul/avrup/internal/app"
	"github.com/buckleypaul/avrup/internal/avrdude"
	"github.com/buckleypaul/avrup/internal/board"
	"github.com/buckleypaul/avrup/internal/config"
	"github.com/buckleypaul/avrup/internal/pages"
	"github.com/buckleypaul/avrup/internal/platform"
	"github.com/buckleypaul/avrup/internal/props"
	"github.com/buckleypaul/avrup/internal/serial"
	"github.com/buckleypaul/avrup/internal/store"
)

const envPrefix = "AVRUP_"

func main() {
	flagUpload := flag.Bool("upload", false, "Upload firmware without starting the UI")
	flagPorts := flag.Bool("ports", false, "List serial ports that look like AVR boards")
	flagBoard := flag.String("board", "", "Board variant (uno, nano, mega, botnroll, mbot, bob3)")
	flagPort := flag.String("port", "", "Serial port, e.g. ttyACM0 or COM3 (optional)")
	flagHex := flag.String("hex", "", "Intel HEX firmware to upload")

	flag.Parse()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ws, err := config.DetectWorkspace(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load(ws)
	setLogLevel(cfg.LogLevel)

	st := store.New(filepath.Join(ws, config.DirName))
	resolver := platform.NewResolver(platform.Current(), loadProperties(cfg, ws), platform.WithBaseDir(cfg.ToolchainDir))

	switch {
	case *flagPorts:
		if err := printPorts(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *flagUpload:
		if *flagBoard != "" {
			cfg.DefaultBoard = *flagBoard
		}
		if *flagPort != "" {
			cfg.SerialPort = *flagPort
		}
		if *flagHex != "" {
			cfg.Firmware = *flagHex
		}
		os.Exit(runHeadless(cfg, resolver, st))
	default:
		if err := runTUI(cfg, ws, resolver, st); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func setLogLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid log level %q, using %s", level, config.DefaultLogLevel)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// loadProperties layers AVRUP_* environment variables over the properties
// file. A missing file is not an error; the environment alone may be enough.
func loadProperties(cfg config.Config, ws string) props.Store {
	layers := props.Layered{props.Env{Prefix: envPrefix}}

	path := cfg.PropertiesPath(ws)
	if path == "" {
		return layers
	}
	fileProps, err := props.LoadFile(path)
	switch {
	case errors.Is(err, errors.NotFound):
		logrus.Debugf("No properties file at %s", path)
	case err != nil:
		logrus.Warnf("Could not read properties: %v", err)
	default:
		layers = append(layers, fileProps)
	}
	return layers
}

func printPorts() error {
	ports, err := serial.ListPorts()
	if err != nil {
		return errors.Trace(err)
	}
	for _, p := range ports {
		mark := " "
		if serial.IsCandidate(p) {
			mark = "*"
		}
		desc := p.Product
		if v := serial.GuessVariant(p); v != board.Unknown {
			desc += " [" + v.String() + "]"
		}
		fmt.Printf("%s %-24s %s:%s %s\n", mark, p.Name, p.VID, p.PID, desc)
	}
	return nil
}

// runHeadless performs one upload and returns the process exit code.
func runHeadless(cfg config.Config, resolver *platform.Resolver, st *store.Store) int {
	if cfg.SerialPort == "" {
		fmt.Println("Port not specified, running auto port discovery...")
		ports, err := serial.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		candidates := serial.Candidates(ports)
		if len(candidates) == 0 {
			fmt.Fprintln(os.Stderr, "No board found; pass -port")
			return 1
		}
		cfg.SerialPort = candidates[0].ShortName()
		if cfg.DefaultBoard == "" {
			cfg.DefaultBoard = serial.GuessVariant(candidates[0]).String()
		}
	}
	if cfg.Firmware == "" {
		fmt.Fprintln(os.Stderr, "No firmware specified; pass -hex")
		return 1
	}

	req := avrdude.Request{
		Variant:  board.ParseVariant(cfg.DefaultBoard),
		Port:     cfg.SerialPort,
		Firmware: cfg.Firmware,
	}
	start := time.Now()
	out := avrdude.New(resolver).Upload(req)

	if _, err := st.AddUpload(store.NewUploadRecord(req, out, start)); err != nil {
		logrus.Warnf("Could not save history: %v", err)
	}

	if !out.Succeeded {
		if out.Err != nil {
			fmt.Fprintf(os.Stderr, "Upload failed: %v\n", out.Err)
		} else {
			fmt.Fprintf(os.Stderr, "Upload failed: avrdude exited with %d\n", out.ExitCode)
		}
		return 1
	}
	fmt.Printf("Uploaded %s to %s (%s) in %s\n", req.Firmware, req.Port, req.Variant, out.Duration.Round(time.Millisecond))
	return 0
}

func runTUI(cfg config.Config, ws string, resolver *platform.Resolver, st *store.Store) error {
	// The alt screen owns the terminal, so logs and avrdude output go to a file.
	var avrdudeOut io.Writer = io.Discard
	logHint := ""
	if dir, err := st.LogsDir(); err == nil {
		logPath := filepath.Join(dir, "avrup.log")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer f.Close()
			logrus.SetOutput(f)
			avrdudeOut = f
			logHint = logPath
		}
	}
	if logHint == "" {
		logrus.SetOutput(io.Discard)
	}

	uploader := avrdude.New(resolver, avrdude.WithStderr(avrdudeOut))

	uploadPage := pages.NewUploadPage(&cfg, uploader, st, resolver)
	uploadPage.SetLogHint(logHint)

	pageMap := map[app.PageID]app.Page{
		app.UploadPage:   uploadPage,
		app.PortsPage:    pages.NewPortsPage(nil, cfg.SerialPort),
		app.HistoryPage:  pages.NewHistoryPage(st),
		app.SettingsPage: pages.NewSettingsPage(&cfg, ws),
	}

	model := app.New(pageMap, &cfg, ws)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return errors.Trace(err)
}
