package platform

import (
	paths "github.com/arduino/go-paths-helper"
)

// ToolchainHealth reports which configured toolchain files exist.
type ToolchainHealth struct {
	ExecutableFound bool
	ConfigFound     bool
}

// OK is true when both the executable and its config are present.
func (h ToolchainHealth) OK() bool {
	return h.ExecutableFound && h.ConfigFound
}

// Check stats the resolved toolchain paths. Empty paths count as missing.
func Check(tc ToolchainPaths) ToolchainHealth {
	return ToolchainHealth{
		ExecutableFound: isFile(tc.Executable),
		ConfigFound:     isFile(tc.Config),
	}
}

func isFile(p string) bool {
	if p == "" {
		return false
	}
	return paths.New(p).IsNotDir()
}
