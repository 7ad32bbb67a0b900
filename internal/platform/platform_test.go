package platform

import (
	"path/filepath"
	"testing"

	"github.com/buckleypaul/avrup/internal/props"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		goos, goarch string
		want         Host
	}{
		{"windows", "amd64", Windows},
		{"windows", "386", Windows},
		{"linux", "386", LinuxX86},
		{"linux", "arm", LinuxARM},
		{"linux", "amd64", LinuxX64},
		{"linux", "arm64", LinuxX64},
		{"darwin", "arm64", MacOS},
		{"freebsd", "amd64", MacOS},
		{"plan9", "386", MacOS},
	}
	for _, c := range cases {
		if got := Detect(c.goos, c.goarch); got != c.want {
			t.Errorf("Detect(%q, %q) = %s, want %s", c.goos, c.goarch, got, c.want)
		}
	}
}

func TestPortPath(t *testing.T) {
	if got := LinuxX64.PortPath("ttyUSB0"); got != "/dev/ttyUSB0" {
		t.Errorf("expected /dev/ttyUSB0, got %q", got)
	}
	if got := MacOS.PortPath("cu.usbmodem1411"); got != "/dev/cu.usbmodem1411" {
		t.Errorf("expected /dev/cu.usbmodem1411, got %q", got)
	}
	if got := Windows.PortPath("COM3"); got != "COM3" {
		t.Errorf("expected COM3, got %q", got)
	}
}

func fullTable() props.Map {
	return props.Map{
		KeyWinPath:      `C:\avrdude\avrdude.exe`,
		KeyWinConfPath:  `C:\avrdude\avrdude.conf`,
		KeyLinPath32:    "/opt/avr/linux32/avrdude",
		KeyLinPathArm32: "/opt/avr/arm32/avrdude",
		KeyLinPath64:    "/opt/avr/linux64/avrdude",
		KeyLinConfPath:  "/opt/avr/avrdude.conf",
		KeyOsXPath:      "/opt/avr/osx/avrdude",
		KeyMacConfPath:  "/opt/avr/osx/avrdude.conf",
	}
}

func TestResolvePathsPerHost(t *testing.T) {
	cases := map[Host]ToolchainPaths{
		Windows:  {`C:\avrdude\avrdude.exe`, `C:\avrdude\avrdude.conf`},
		LinuxX86: {"/opt/avr/linux32/avrdude", "/opt/avr/avrdude.conf"},
		LinuxARM: {"/opt/avr/arm32/avrdude", "/opt/avr/avrdude.conf"},
		LinuxX64: {"/opt/avr/linux64/avrdude", "/opt/avr/avrdude.conf"},
		MacOS:    {"/opt/avr/osx/avrdude", "/opt/avr/osx/avrdude.conf"},
	}
	for host, want := range cases {
		got := NewResolver(host, fullTable()).ResolvePaths()
		if got != want {
			t.Errorf("ResolvePaths(%s) = %+v, want %+v", host, got, want)
		}
	}
}

func TestResolvePathsUnknownOSUsesMacTable(t *testing.T) {
	host := Detect("openbsd", "amd64")
	got := NewResolver(host, fullTable()).ResolvePaths()
	if got.Executable != "/opt/avr/osx/avrdude" || got.Config != "/opt/avr/osx/avrdude.conf" {
		t.Fatalf("expected macOS paths for unknown OS, got %+v", got)
	}
}

func TestResolvePathsOutOfRangeHostUsesMacKeys(t *testing.T) {
	exe, conf := Keys(Host(77))
	if exe != KeyOsXPath || conf != KeyMacConfPath {
		t.Fatalf("expected macOS keys, got %q %q", exe, conf)
	}
}

func TestResolvePathsMissingKeysAreEmpty(t *testing.T) {
	got := NewResolver(LinuxARM, props.Map{KeyLinPath64: "/usr/bin/avrdude"}).ResolvePaths()
	if got.Executable != "" || got.Config != "" {
		t.Fatalf("expected empty paths, got %+v", got)
	}
}

func TestResolvePathsDeterministic(t *testing.T) {
	r := NewResolver(LinuxX64, fullTable())
	first := r.ResolvePaths()
	for i := 0; i < 5; i++ {
		if got := r.ResolvePaths(); got != first {
			t.Fatalf("ResolvePaths changed between calls: %+v vs %+v", first, got)
		}
	}
}

func TestResolvePathsBaseDir(t *testing.T) {
	base := t.TempDir()
	store := props.Map{
		KeyLinPath64:   "lib/avrdude/bin/avrdude",
		KeyLinConfPath: "/etc/avrdude.conf",
	}

	got := NewResolver(LinuxX64, store, WithBaseDir(base)).ResolvePaths()

	wantExe := filepath.Join(base, "lib", "avrdude", "bin", "avrdude")
	if got.Executable != wantExe {
		t.Errorf("Executable = %q, want %q", got.Executable, wantExe)
	}
	if got.Config != "/etc/avrdude.conf" {
		t.Errorf("absolute Config should be untouched, got %q", got.Config)
	}
}

func TestResolvePathsBaseDirKeepsEmpty(t *testing.T) {
	got := NewResolver(LinuxX64, props.Map{}, WithBaseDir(t.TempDir())).ResolvePaths()
	if got.Executable != "" || got.Config != "" {
		t.Fatalf("expected empty paths to stay empty, got %+v", got)
	}
}
