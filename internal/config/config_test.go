package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Archive.Paths) != 0 {
		t.Errorf("expected no archives by default, got %v", cfg.Archive.Paths)
	}
	if cfg.Loader.GroupWorkers != 4 {
		t.Errorf("expected 4 group workers, got %d", cfg.Loader.GroupWorkers)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected json output, got %s", cfg.Output.Format)
	}
	if cfg.Output.Compact || cfg.Output.NoResult {
		t.Error("expected pretty output with results by default")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	yamlContent := `
archive:
  paths:
    - Data/common.MPQ
    - Data/patch.MPQ

loader:
  group_workers: 8

output:
  format: yaml
  compact: true

logging:
  level: "debug"
  log_file: "wowtool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if want := []string{"Data/common.MPQ", "Data/patch.MPQ"}; !reflect.DeepEqual(cfg.Archive.Paths, want) {
		t.Errorf("expected archives %v, got %v", want, cfg.Archive.Paths)
	}
	if cfg.Loader.GroupWorkers != 8 {
		t.Errorf("expected 8 group workers, got %d", cfg.Loader.GroupWorkers)
	}
	if cfg.Output.Format != "yaml" || !cfg.Output.Compact {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Output.NoResult {
		t.Error("no_result not set in file but enabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "wowtool.log" {
		t.Errorf("expected log file 'wowtool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
loader:
  group_workers: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/wowtool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(Overrides{ConfigPath: filepath.Join(t.TempDir(), "none.yaml")}); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("loader:\n  group_workers: 2\n"), 0o644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestOverrides(t *testing.T) {
	tests := []struct {
		name   string
		o      Overrides
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug",
			o:    Overrides{Debug: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "output",
			o:    Overrides{Format: "cbor", Compact: true, NoResult: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output != (OutputConfig{Format: "cbor", Compact: true, NoResult: true}) {
					t.Errorf("unexpected output config %+v", cfg.Output)
				}
			},
		},
		{
			name: "workers and archives",
			o:    Overrides{GroupWorkers: 16, Archives: []string{"a.MPQ"}},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Loader.GroupWorkers != 16 {
					t.Errorf("expected 16 workers, got %d", cfg.Loader.GroupWorkers)
				}
				if !reflect.DeepEqual(cfg.Archive.Paths, []string{"a.MPQ"}) {
					t.Errorf("unexpected archives %v", cfg.Archive.Paths)
				}
			},
		},
		{
			name: "zero values keep defaults",
			o:    Overrides{},
			verify: func(t *testing.T, cfg *Config) {
				if !reflect.DeepEqual(cfg, Default()) {
					t.Errorf("empty overrides changed config: %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.o.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	yamlContent := `
loader:
  group_workers: 2
output:
  format: yaml
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(Overrides{ConfigPath: configPath, GroupWorkers: 6})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Workers come from the flag, not the file
	if cfg.Loader.GroupWorkers != 6 {
		t.Errorf("expected 6 workers from flag, got %d", cfg.Loader.GroupWorkers)
	}
	// Format comes from the file since no flag overrides it
	if cfg.Output.Format != "yaml" {
		t.Errorf("expected yaml from file, got %s", cfg.Output.Format)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Archive.Paths = []string{"Data/common.MPQ"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := Load(Overrides{ConfigPath: path})
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != FileName {
		t.Errorf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}
