package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config should not fail: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `templates: /opt/templates.tar.xz
csharp:
  lsp: omnisharp
rust:
  edition: "2024"
  package_template: Binary
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Templates != "/opt/templates.tar.xz" {
		t.Errorf("Templates = %q", cfg.Templates)
	}
	if cfg.Csharp.Lsp != CsharpLspOmniSharp {
		t.Errorf("Csharp.Lsp = %q", cfg.Csharp.Lsp)
	}
	if cfg.Csharp.RollForward != "latestMinor" {
		t.Errorf("RollForward default lost: %q", cfg.Csharp.RollForward)
	}
	if cfg.Rust.Edition != "2024" || cfg.Rust.PackageTemplate != PackageTemplateBinary {
		t.Errorf("Rust = %+v", cfg.Rust)
	}
}

func TestLoadConfigInvalidValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("csharp:\n  lsp: vim\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown language server")
	}
}

func TestDefaultPathFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.yaml")
	if got := DefaultPath(); got != "/tmp/custom.yaml" {
		t.Fatalf("DefaultPath() = %q", got)
	}
}

func TestEnumSet(t *testing.T) {
	var lsp CsharpLsp
	if err := lsp.Set("csharplsp"); err != nil || lsp != CsharpLspDefault {
		t.Fatalf("Set(csharplsp) = %v, %q", err, lsp)
	}

	var tmpl PackageTemplate
	if err := tmpl.Set("binary"); err != nil || tmpl.CargoFlag() != "--bin" {
		t.Fatalf("Set(binary) = %v, flag %q", err, tmpl.CargoFlag())
	}
	if err := tmpl.Set("Library"); err != nil || tmpl.CargoFlag() != "--lib" {
		t.Fatalf("Set(Library) = %v, flag %q", err, tmpl.CargoFlag())
	}
	if err := tmpl.Set("cdylib"); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
