package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// CsharpLsp selects the C# language server configured in .vscode/settings.json.
type CsharpLsp string

const (
	// CsharpLspDefault is the language server shipped with the C# extension.
	CsharpLspDefault CsharpLsp = "CsharpLsp"

	// CsharpLspOmniSharp is the OmniSharp language server.
	CsharpLspOmniSharp CsharpLsp = "OmniSharp"
)

// CsharpLspValues lists the accepted values, in help order.
var CsharpLspValues = []CsharpLsp{CsharpLspDefault, CsharpLspOmniSharp}

// String implements pflag.Value.
func (l *CsharpLsp) String() string { return string(*l) }

// Type implements pflag.Value.
func (l *CsharpLsp) Type() string { return "CsharpLsp|OmniSharp" }

// Set implements pflag.Value. Matching is case-insensitive.
func (l *CsharpLsp) Set(s string) error {
	for _, v := range CsharpLspValues {
		if strings.EqualFold(s, string(v)) {
			*l = v
			return nil
		}
	}
	return fmt.Errorf("invalid C# language server %q (expected CsharpLsp or OmniSharp)", s)
}

// UnmarshalYAML parses the value from the user configuration file.
func (l *CsharpLsp) UnmarshalYAML(value *yaml.Node) error {
	return l.Set(value.Value)
}

// PackageTemplate is the kind of Cargo package to create.
type PackageTemplate string

const (
	PackageTemplateBinary  PackageTemplate = "Binary"
	PackageTemplateLibrary PackageTemplate = "Library"
)

// PackageTemplateValues lists the accepted values, in help order.
var PackageTemplateValues = []PackageTemplate{PackageTemplateBinary, PackageTemplateLibrary}

// String implements pflag.Value.
func (p *PackageTemplate) String() string { return string(*p) }

// Type implements pflag.Value.
func (p *PackageTemplate) Type() string { return "Binary|Library" }

// Set implements pflag.Value. Matching is case-insensitive.
func (p *PackageTemplate) Set(s string) error {
	for _, v := range PackageTemplateValues {
		if strings.EqualFold(s, string(v)) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("invalid package template %q (expected Binary or Library)", s)
}

// UnmarshalYAML parses the value from the user configuration file.
func (p *PackageTemplate) UnmarshalYAML(value *yaml.Node) error {
	return p.Set(value.Value)
}

// CargoFlag returns the `cargo init` flag selecting the template.
func (p PackageTemplate) CargoFlag() string {
	if p == PackageTemplateBinary {
		return "--bin"
	}
	return "--lib"
}

// Csharp holds defaults for the csharp commands.
type Csharp struct {
	Lsp         CsharpLsp `yaml:"lsp"`
	RollForward string    `yaml:"roll_forward"`
}

// Rust holds defaults for the rust commands.
type Rust struct {
	Edition         string          `yaml:"edition"`
	PackageTemplate PackageTemplate `yaml:"package_template"`
}

// Config is the user configuration. Every field is optional; Default fills
// in anything the file leaves out.
type Config struct {
	// Templates points at a templates directory or a template bundle archive.
	// Empty means "next to the executable, else the built-in templates".
	Templates string `yaml:"templates"`
	Csharp    Csharp `yaml:"csharp"`
	Rust      Rust   `yaml:"rust"`
}
