package avrdude

import (
	"io"
)

type launchCall struct {
	name   string
	args   []string
	stderr io.Writer
}

type fakeLauncher struct {
	exitCode int
	err      error
	stderr   string

	calls []launchCall
}

func (f *fakeLauncher) Launch(name string, args []string, stderr io.Writer) (int, error) {
	copied := append([]string(nil), args...)
	f.calls = append(f.calls, launchCall{name: name, args: copied, stderr: stderr})
	if f.stderr != "" && stderr != nil {
		io.WriteString(stderr, f.stderr)
	}
	if f.err != nil {
		return ExitCodeUnset, f.err
	}
	return f.exitCode, nil
}
