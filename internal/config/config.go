// Package config handles wowtool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Archive ArchiveConfig `yaml:"archive"`
	Loader  LoaderConfig  `yaml:"loader"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ArchiveConfig lists the archives opened when a command reads from the
// game data. Later entries take priority, matching the client's patch order.
type ArchiveConfig struct {
	Paths []string `yaml:"paths"`
}

// LoaderConfig tunes asset assembly.
type LoaderConfig struct {
	GroupWorkers int `yaml:"group_workers"` // concurrent WMO group loads
}

// OutputConfig selects how decoded values are printed.
type OutputConfig struct {
	Format   string `yaml:"format"` // json, yaml or cbor
	Compact  bool   `yaml:"compact"`
	NoResult bool   `yaml:"no_result"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			GroupWorkers: 4,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}
