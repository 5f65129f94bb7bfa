package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default configuration file location.
const EnvConfigPath = "VSCODECONFIGURATOR_CONFIG"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Csharp: Csharp{
			Lsp:         CsharpLspDefault,
			RollForward: "latestMinor",
		},
		Rust: Rust{
			Edition:         "2021",
			PackageTemplate: PackageTemplateLibrary,
		},
	}
}

// DefaultPath returns where the configuration file is looked up when no
// --config flag is given: $VSCODECONFIGURATOR_CONFIG, else
// <user config dir>/vscodeconfigurator/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vscodeconfigurator", "config.yaml")
}

// LoadConfig reads the YAML configuration at path on top of Default.
// A missing file is not an error; the defaults are returned as-is.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}

	// Empty keys in the file must not wipe the defaults out
	def := Default()
	if cfg.Csharp.Lsp == "" {
		cfg.Csharp.Lsp = def.Csharp.Lsp
	}
	if cfg.Csharp.RollForward == "" {
		cfg.Csharp.RollForward = def.Csharp.RollForward
	}
	if cfg.Rust.Edition == "" {
		cfg.Rust.Edition = def.Rust.Edition
	}
	if cfg.Rust.PackageTemplate == "" {
		cfg.Rust.PackageTemplate = def.Rust.PackageTemplate
	}

	return cfg, nil
}
