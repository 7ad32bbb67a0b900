package avrdude

import (
	"io"
	"os"
	"time"

	"github.com/arduino/go-paths-helper"
	"github.com/sirupsen/logrus"

	"github.com/buckleypaul/avrup/internal/board"
	"github.com/buckleypaul/avrup/internal/platform"
)

// ExitCodeUnset marks an outcome whose process never exited.
const ExitCodeUnset = -1

// Stage is a step of a single upload attempt.
type Stage int

const (
	StageIdle Stage = iota
	StageParametersResolved
	StageProcessLaunched
	StageProcessExited
	StageOutcomeReported
)

func (s Stage) String() string {
	switch s {
	case StageParametersResolved:
		return "parameters-resolved"
	case StageProcessLaunched:
		return "process-launched"
	case StageProcessExited:
		return "process-exited"
	case StageOutcomeReported:
		return "outcome-reported"
	default:
		return "idle"
	}
}

// Request describes one upload.
type Request struct {
	Variant  board.Variant
	Port     string // bare port name, e.g. ttyUSB0 or COM3
	Firmware string // path to an Intel HEX image
}

// Outcome is the result of one upload attempt.
type Outcome struct {
	Succeeded bool
	ExitCode  int
	Duration  time.Duration
	// Stage is the last stage entered before the outcome was reported.
	Stage Stage
	// Err is set when avrdude could not be launched or waited on.
	Err error
}

// StageFunc observes stage transitions.
type StageFunc func(Stage)

// Uploader runs avrdude for upload requests. It holds no per-upload state, so
// a single Uploader may serve concurrent calls as long as they target
// different ports.
type Uploader struct {
	resolver *platform.Resolver
	launcher Launcher
	stderr   io.Writer
	log      logrus.FieldLogger
	onStage  StageFunc
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithLauncher replaces the os/exec launcher.
func WithLauncher(l Launcher) Option {
	return func(u *Uploader) {
		if l != nil {
			u.launcher = l
		}
	}
}

// WithStderr sets where avrdude's standard error goes. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(u *Uploader) {
		if w != nil {
			u.stderr = w
		}
	}
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(u *Uploader) {
		if l != nil {
			u.log = l
		}
	}
}

// WithStageCallback registers fn to be called on every stage transition.
func WithStageCallback(fn StageFunc) Option {
	return func(u *Uploader) {
		u.onStage = fn
	}
}

// New creates an Uploader that resolves toolchain paths through resolver.
func New(resolver *platform.Resolver, opts ...Option) *Uploader {
	u := &Uploader{
		resolver: resolver,
		launcher: ExecLauncher{},
		stderr:   os.Stderr,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload flashes req.Firmware onto the board at req.Port and blocks until
// avrdude exits. It never returns an error: launch faults and nonzero exit
// codes both come back as an Outcome with Succeeded false.
func (u *Uploader) Upload(req Request) Outcome {
	start := time.Now()
	out := Outcome{ExitCode: ExitCodeUnset, Stage: StageIdle}

	host := u.resolver.Host()
	tc := u.resolver.ResolvePaths()
	portPath := host.PortPath(req.Port)
	params := board.SelectParameters(req.Variant)
	args := Args(params, req.Firmware, tc.Config, portPath)
	u.advance(&out, StageParametersResolved)

	log := u.log.WithFields(logrus.Fields{
		"board": req.Variant.String(),
		"port":  portPath,
		"host":  host.String(),
	})
	if fw := paths.New(req.Firmware); fw == nil || !fw.Exist() {
		log.Warnf("Firmware %q not found, handing it to avrdude anyway", req.Firmware)
	}

	log.Infof("Starting to upload program %s to %s", req.Firmware, portPath)
	log.Debugf("Running %s %v", tc.Executable, args)

	u.advance(&out, StageProcessLaunched)
	code, err := u.launcher.Launch(tc.Executable, args, u.stderr)
	out.Duration = time.Since(start)
	if err != nil {
		log.WithError(err).Errorf("Error while uploading to board: %v", err)
		out.Err = err
		u.advance(&out, StageOutcomeReported)
		return out
	}

	u.advance(&out, StageProcessExited)
	out.ExitCode = code
	out.Succeeded = code == 0
	if out.Succeeded {
		log.Info("Program uploaded successfully")
	} else {
		log.Infof("Program was unable to be uploaded: %d", code)
	}
	log.Debugf("Exit code %d", code)

	u.advance(&out, StageOutcomeReported)
	return out
}

// advance records s on out and notifies the stage callback. Outcome.Stage
// keeps the last stage before reporting: process-launched for launch faults,
// process-exited once avrdude has run.
func (u *Uploader) advance(out *Outcome, s Stage) {
	if s != StageOutcomeReported {
		out.Stage = s
	}
	if u.onStage != nil {
		u.onStage(s)
	}
}
