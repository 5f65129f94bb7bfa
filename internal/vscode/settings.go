package vscode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"vscodeconfigurator/internal/clierror"
	"vscodeconfigurator/internal/config"
)

// Settings keys managed by the csharp commands.
const (
	keyDefaultSolution = "dotnet.defaultSolution"
	keyUseOmnisharp    = "dotnet.server.useOmnisharp"
	keyServerPath      = "dotnet.server.path"
)

// SettingsFile is a decoded .vscode/settings.json.
type SettingsFile struct {
	Path string

	DefaultSolution *string
	UseOmnisharp    *bool
	ServerPath      *string

	extra members
}

// SettingsPath returns the settings.json location for a workspace root.
func SettingsPath(root string) string {
	return filepath.Join(root, ".vscode", "settings.json")
}

// LoadSettings reads and decodes the settings file at path.
func LoadSettings(path string) (*SettingsFile, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, clierror.Newf(clierror.FilePathDoesNotExist,
			"The settings file '%s' does not exist.", path)
	}
	if err != nil {
		return nil, err
	}

	var m members
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m == nil {
		return nil, clierror.Newf(clierror.InvalidDocument, "'%s' is not a JSON object.", path)
	}

	s := &SettingsFile{Path: path}
	for key, dst := range map[string]any{
		keyDefaultSolution: &s.DefaultSolution,
		keyUseOmnisharp:    &s.UseOmnisharp,
		keyServerPath:      &s.ServerPath,
	} {
		if _, err := m.take(key, dst); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	s.extra = m
	return s, nil
}

// SetCsharpLsp selects the C# language server.
func (s *SettingsFile) SetCsharpLsp(lsp config.CsharpLsp) {
	useOmnisharp := lsp == config.CsharpLspOmniSharp
	serverPath := ""
	if useOmnisharp {
		serverPath = "latest"
	}
	s.UseOmnisharp = &useOmnisharp
	s.ServerPath = &serverPath
}

func (s *SettingsFile) MarshalJSON() ([]byte, error) {
	m := s.extra.clone()
	for key, v := range map[string]any{
		keyDefaultSolution: s.DefaultSolution,
		keyUseOmnisharp:    s.UseOmnisharp,
		keyServerPath:      s.ServerPath,
	} {
		if isNilPointer(v) {
			continue
		}
		if err := m.put(key, v); err != nil {
			return nil, err
		}
	}
	return marshal(m)
}

func isNilPointer(v any) bool {
	switch p := v.(type) {
	case *string:
		return p == nil
	case *bool:
		return p == nil
	}
	return v == nil
}

// Save writes the document back to Path.
func (s *SettingsFile) Save() error {
	return writeDocument(s.Path, s)
}

// UpdateCsharpLsp loads the workspace settings, selects lsp and saves them.
func UpdateCsharpLsp(root string, lsp config.CsharpLsp) error {
	settings, err := LoadSettings(SettingsPath(root))
	if err != nil {
		return err
	}
	settings.SetCsharpLsp(lsp)
	return settings.Save()
}
