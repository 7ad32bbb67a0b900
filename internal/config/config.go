package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/juju/errors"
)

const (
	DefaultPropertiesFile = "avrup.properties"
	DefaultLogLevel       = "info"

	// DirName is the per-workspace state directory.
	DirName = ".avrup"
)

// Config holds all avrup configuration.
type Config struct {
	DefaultBoard   string `json:"default_board,omitempty"`
	SerialPort     string `json:"serial_port,omitempty"`
	Firmware       string `json:"firmware,omitempty"`
	PropertiesFile string `json:"properties_file,omitempty"`
	ToolchainDir   string `json:"toolchain_dir,omitempty"`
	LogLevel       string `json:"log_level,omitempty"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		PropertiesFile: DefaultPropertiesFile,
		LogLevel:       DefaultLogLevel,
	}
}

func globalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "avrup"), nil
}

// Load reads and merges global and workspace configs.
// Order: defaults → global (~/.config/avrup/config.json) → workspace (.avrup/config.json).
func Load(workspaceRoot string) Config {
	cfg := Defaults()

	if dir, err := globalDir(); err == nil {
		mergeFromFile(&cfg, filepath.Join(dir, "config.json"))
	}

	if workspaceRoot != "" {
		mergeFromFile(&cfg, filepath.Join(workspaceRoot, DirName, "config.json"))
	}

	return cfg
}

// Save writes the config to the workspace .avrup/config.json by default,
// or to the global config if global is true.
func Save(cfg Config, workspaceRoot string, global bool) error {
	var dir string
	if global {
		d, err := globalDir()
		if err != nil {
			return errors.Annotate(err, "locating home directory")
		}
		dir = d
	} else {
		dir = filepath.Join(workspaceRoot, DirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Trace(err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}

	return errors.Trace(os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644))
}

// PropertiesPath returns the property file location, anchored at
// workspaceRoot when relative.
func (c Config) PropertiesPath(workspaceRoot string) string {
	if c.PropertiesFile == "" || filepath.IsAbs(c.PropertiesFile) {
		return c.PropertiesFile
	}
	return filepath.Join(workspaceRoot, c.PropertiesFile)
}

func mergeFromFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var fileCfg Config
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return
	}

	if fileCfg.DefaultBoard != "" {
		cfg.DefaultBoard = fileCfg.DefaultBoard
	}
	if fileCfg.SerialPort != "" {
		cfg.SerialPort = fileCfg.SerialPort
	}
	if fileCfg.Firmware != "" {
		cfg.Firmware = fileCfg.Firmware
	}
	if fileCfg.PropertiesFile != "" {
		cfg.PropertiesFile = fileCfg.PropertiesFile
	}
	if fileCfg.ToolchainDir != "" {
		cfg.ToolchainDir = fileCfg.ToolchainDir
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
}
