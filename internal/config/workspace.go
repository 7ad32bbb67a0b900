package config

import (
	"os"
	"path/filepath"
)

// DetectWorkspace walks up from startDir looking for a .avrup/ directory.
// A properties file found on the way is used as a fallback marker. When
// neither exists the absolute startDir is the workspace.
func DetectWorkspace(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	start := dir

	var propsCandidate string
	for {
		if info, err := os.Stat(filepath.Join(dir, DirName)); err == nil && info.IsDir() {
			return dir, nil
		}

		if propsCandidate == "" {
			if _, err := os.Stat(filepath.Join(dir, DefaultPropertiesFile)); err == nil {
				propsCandidate = dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if propsCandidate != "" {
		return propsCandidate, nil
	}
	return start, nil
}
