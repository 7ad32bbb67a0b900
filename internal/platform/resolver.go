package platform

import (
	"github.com/arduino/go-paths-helper"

	"github.com/buckleypaul/avrup/internal/props"
)

// Property keys holding avrdude locations per host.
const (
	KeyWinPath      = "WinPath"
	KeyWinConfPath  = "WinConfPath"
	KeyLinPath32    = "LinPath32"
	KeyLinPathArm32 = "LinPathArm32"
	KeyLinPath64    = "LinPath64"
	KeyLinConfPath  = "LinConfPath"
	KeyOsXPath      = "OsXPath"
	KeyMacConfPath  = "MacConfPath"
)

// ToolchainPaths locates the avrdude binary and its configuration file.
type ToolchainPaths struct {
	Executable string
	Config     string
}

type toolchainKeys struct {
	executable string
	config     string
}

var keyTable = map[Host]toolchainKeys{
	Windows:  {KeyWinPath, KeyWinConfPath},
	LinuxX86: {KeyLinPath32, KeyLinConfPath},
	LinuxARM: {KeyLinPathArm32, KeyLinConfPath},
	LinuxX64: {KeyLinPath64, KeyLinConfPath},
	MacOS:    {KeyOsXPath, KeyMacConfPath},
}

// Keys returns the property keys consulted for h. Hosts outside the table
// use the macOS keys.
func Keys(h Host) (executable, config string) {
	k, ok := keyTable[h]
	if !ok {
		k = keyTable[MacOS]
	}
	return k.executable, k.config
}

// Resolver maps a Host to ToolchainPaths using a property store.
type Resolver struct {
	host    Host
	props   props.Store
	baseDir *paths.Path
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithBaseDir anchors relative property values at dir. Absolute values and
// empty values are returned unchanged.
func WithBaseDir(dir string) ResolverOption {
	return func(r *Resolver) {
		if dir != "" {
			r.baseDir = paths.New(dir)
		}
	}
}

// NewResolver creates a Resolver for host backed by store.
func NewResolver(host Host, store props.Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{host: host, props: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Host returns the host this resolver was built for.
func (r *Resolver) Host() Host {
	return r.host
}

// ResolvePaths looks up the executable and config paths for the resolver's
// host. Missing keys resolve to "". It has no side effects.
func (r *Resolver) ResolvePaths() ToolchainPaths {
	exeKey, confKey := Keys(r.host)
	return ToolchainPaths{
		Executable: r.anchor(props.Lookup(r.props, exeKey)),
		Config:     r.anchor(props.Lookup(r.props, confKey)),
	}
}

func (r *Resolver) anchor(value string) string {
	if value == "" || r.baseDir == nil {
		return value
	}
	p := paths.New(value)
	if p.IsAbs() {
		return value
	}
	return r.baseDir.JoinPath(p).String()
}
