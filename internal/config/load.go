package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the working directory and
// the config directory.
const FileName = "wowtool.yaml"

// Overrides carries command-line values that win over the config file.
// Zero values leave the loaded setting untouched.
type Overrides struct {
	ConfigPath   string
	Debug        bool
	LogFile      string
	Format       string
	Compact      bool
	NoResult     bool
	GroupWorkers int
	Archives     []string
}

// Load loads configuration with priority: defaults < file < flags.
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	// Explicit path takes priority and must exist
	configPath := o.ConfigPath
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	o.apply(cfg)
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "wowtool")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "wowtool")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "wowtool")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "wowtool")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// apply copies the set overrides into cfg.
func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.Compact {
		cfg.Output.Compact = true
	}
	if o.NoResult {
		cfg.Output.NoResult = true
	}
	if o.GroupWorkers > 0 {
		cfg.Loader.GroupWorkers = o.GroupWorkers
	}
	if len(o.Archives) > 0 {
		cfg.Archive.Paths = o.Archives
	}
}
