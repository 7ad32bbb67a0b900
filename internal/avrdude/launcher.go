package avrdude

import (
	"io"
	"os/exec"

	"github.com/juju/errors"
)

// Launcher starts a process and waits for it. A process that ran and exited
// reports its exit code with a nil error, whatever the code. A non-nil error
// means the process could not be started, waited on, or was killed by a
// signal before exiting.
type Launcher interface {
	Launch(name string, args []string, stderr io.Writer) (exitCode int, err error)
}

// ExecLauncher runs processes with os/exec. Stdin and Stdout are left unset
// unless configured, which discards output and reads from the null device.
type ExecLauncher struct {
	Stdin  io.Reader
	Stdout io.Writer
}

func (l ExecLauncher) Launch(name string, args []string, stderr io.Writer) (int, error) {
	if name == "" {
		return ExitCodeUnset, errors.NotValidf("empty executable path")
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return ExitCodeUnset, errors.Annotatef(err, "starting %s", name)
	}

	err := cmd.Wait()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			if exitErr.ExitCode() < 0 {
				return ExitCodeUnset, errors.Annotatef(err, "%s terminated", name)
			}
			return exitErr.ExitCode(), nil
		}
		return ExitCodeUnset, errors.Annotatef(err, "waiting for %s", name)
	}
	return 0, nil
}
