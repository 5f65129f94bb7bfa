package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"vscodeconfigurator/internal/clierror"
	"vscodeconfigurator/internal/config"
	"vscodeconfigurator/internal/logger"
)

// CargoManifest is the workspace manifest file name.
const CargoManifest = "Cargo.toml"

// InitPackage runs `cargo init` for root/name. An existing package
// directory goes through the overwrite policy as a whole.
func (t *Toolchain) InitPackage(ctx context.Context, root, name string, template config.PackageTemplate, edition string) error {
	label := fmt.Sprintf("Initializing package for '%s'...", name)
	dir := filepath.Join(root, name)
	return t.generate(ctx, root, label, name, logger.Package,
		"cargo", "init", template.CargoFlag(), "--edition", edition, dir)
}

// RegisterWorkspaceMember adds name to the members of the workspace in
// root/Cargo.toml. It reports false when the member was already listed.
// Only the members array is touched; comments and layout elsewhere in the
// manifest are kept.
func (t *Toolchain) RegisterWorkspaceMember(root, name string) (bool, error) {
	manifest := filepath.Join(root, CargoManifest)
	raw, members, err := readWorkspace(manifest)
	if err != nil {
		return false, err
	}

	// Members are compared in slash form so "./pkg" matches "pkg"
	member := path.Clean(filepath.ToSlash(name))
	for _, m := range members {
		if path.Clean(m) == member {
			t.Console.Debug("'%s' is already a workspace member\n", member)
			return false, nil
		}
	}

	t.Console.Operation(fmt.Sprintf("Adding '%s' to the Cargo workspace...", member), logger.Document)
	out, err := appendWorkspaceMember(raw, manifest, member)
	if err != nil {
		t.Console.Newline()
		return false, err
	}
	if err := os.WriteFile(manifest, out, 0644); err != nil {
		t.Console.Newline()
		return false, err
	}

	t.Console.OperationDone()
	return true, nil
}

// WorkspaceMembers returns the members listed in root/Cargo.toml. The
// manifest must declare a workspace whose members are strings.
func WorkspaceMembers(root string) ([]string, error) {
	_, members, err := readWorkspace(filepath.Join(root, CargoManifest))
	return members, err
}

func readWorkspace(manifest string) ([]byte, []string, error) {
	raw, err := os.ReadFile(manifest)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, clierror.Newf(clierror.FilePathDoesNotExist,
			"The Cargo manifest '%s' does not exist.", manifest)
	}
	if err != nil {
		return nil, nil, err
	}

	// Decode once to validate the document; edits are made on raw
	var doc map[string]any
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", manifest, err)
	}

	workspace, ok := doc["workspace"].(map[string]any)
	if !ok {
		return nil, nil, clierror.Newf(clierror.InvalidDocument,
			"'%s' does not declare a [workspace] table.", manifest)
	}

	var members []string
	switch list := workspace["members"].(type) {
	case nil:
	case []any:
		for _, m := range list {
			s, ok := m.(string)
			if !ok {
				return nil, nil, clierror.Newf(clierror.InvalidDocument,
					"'workspace.members' in '%s' must only list strings.", manifest)
			}
			members = append(members, s)
		}
	default:
		return nil, nil, clierror.Newf(clierror.InvalidDocument,
			"'workspace.members' in '%s' is not an array.", manifest)
	}
	return raw, members, nil
}
