package platform

import "runtime"

// Host classifies the machine avrdude runs on. Architecture only matters on
// Linux, where separate binaries ship for 32-bit x86, 32-bit ARM and 64-bit.
type Host int

const (
	MacOS Host = iota
	Windows
	LinuxX86
	LinuxARM
	LinuxX64
)

func (h Host) String() string {
	switch h {
	case Windows:
		return "windows"
	case LinuxX86:
		return "linux-x86"
	case LinuxARM:
		return "linux-arm"
	case LinuxX64:
		return "linux-x64"
	default:
		return "macos"
	}
}

// Detect classifies a GOOS/GOARCH pair.
//
// Any GOOS other than windows and linux is treated as macOS. This covers
// darwin, but also sends the BSDs and everything else to the macOS tables;
// that fallback is intentional and callers relying on it should not expect
// an error for unknown systems.
func Detect(goos, goarch string) Host {
	switch goos {
	case "windows":
		return Windows
	case "linux":
		switch goarch {
		case "386":
			return LinuxX86
		case "arm":
			return LinuxARM
		default:
			return LinuxX64
		}
	default:
		return MacOS
	}
}

// Current classifies the running process.
func Current() Host {
	return Detect(runtime.GOOS, runtime.GOARCH)
}

// PortPrefix is prepended to a bare serial port name to form the path avrdude
// expects: nothing on Windows (COM3), /dev/ everywhere else.
func (h Host) PortPrefix() string {
	if h == Windows {
		return ""
	}
	return "/dev/"
}

// PortPath joins PortPrefix and name.
func (h Host) PortPath(name string) string {
	return h.PortPrefix() + name
}
