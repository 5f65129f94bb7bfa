package templates

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"vscodeconfigurator/internal/logger"
)

// TemplateFile pairs a template inside the bundle with the file it is
// materialized to.
type TemplateFile struct {
	// Source is the slash separated path inside the template FS.
	Source string

	// Destination is the absolute output path.
	Destination string

	// Location describes the destination directory in log lines,
	// e.g. "project root" or "'.vscode' directory".
	Location string

	Exists bool
}

// NewTemplateFile builds a TemplateFile and records whether the destination
// is already present.
func NewTemplateFile(source, destination, location string) TemplateFile {
	_, err := os.Lstat(destination)
	return TemplateFile{
		Source:      source,
		Destination: destination,
		Location:    location,
		Exists:      err == nil,
	}
}

// Name returns the base name of the destination.
func (t TemplateFile) Name() string {
	return filepath.Base(t.Destination)
}

// Materializer writes template files into a project, asking before it
// replaces anything that already exists.
type Materializer struct {
	FS      fs.FS
	Console *logger.Console
	Force   bool
}

// Guard applies the overwrite policy to dest.
//
// It returns true when the caller may write dest. An existing path is
// removed first (file or whole directory) once the overwrite was confirmed
// or forced. A declined overwrite logs "Already exists" and returns false
// with a nil error.
func (m *Materializer) Guard(dest string) (bool, error) {
	info, err := os.Lstat(dest)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if !m.Force {
		ok, err := m.Console.AskForOverwrite()
		if err != nil {
			return false, err
		}
		if !ok {
			m.Console.AlreadyExists()
			return false, nil
		}
	}

	if info.IsDir() {
		err = os.RemoveAll(dest)
	} else {
		err = os.Remove(dest)
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove existing '%s': %w", filepath.Base(dest), err)
	}
	return true, nil
}

// Copy writes the template verbatim.
func (m *Materializer) Copy(t TemplateFile) error {
	return m.materialize(t, nil)
}

// Render writes the template with every {{token}} replaced by its value.
func (m *Materializer) Render(t TemplateFile, tokens map[string]string) error {
	return m.materialize(t, tokens)
}

func (m *Materializer) materialize(t TemplateFile, tokens map[string]string) error {
	m.Console.Operation(fmt.Sprintf("Copying '%s' to %s...", t.Name(), t.Location), logger.Document)

	ok, err := m.Guard(t.Destination)
	if err != nil || !ok {
		return err
	}

	data, err := fs.ReadFile(m.FS, path.Clean(t.Source))
	if err != nil {
		return fmt.Errorf("reading template %s: %w", t.Source, err)
	}
	if tokens != nil {
		data = []byte(Substitute(string(data), tokens))
	}

	if err := os.MkdirAll(filepath.Dir(t.Destination), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(t.Destination, data, fileMode(m.FS, t.Source)); err != nil {
		return err
	}

	m.Console.OperationDone()
	return nil
}

// fileMode keeps the executable bits of the template and makes the copy
// writable by its owner. Embedded files report 0444.
func fileMode(fsys fs.FS, name string) os.FileMode {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return 0644
	}
	return 0644 | (info.Mode().Perm() & 0111)
}

// EnsureDir creates root/name if it is missing and logs the creation.
func (m *Materializer) EnsureDir(root, name string) (string, error) {
	dir := filepath.Join(root, name)
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("'%s' exists and is not a directory", dir)
		}
		return dir, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	m.Console.Operation(fmt.Sprintf("Creating '%s' directory...", name), logger.Folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	m.Console.OperationDone()
	return dir, nil
}

// Substitute replaces every literal {{key}} in text with tokens[key].
// Unknown markers are left as they are.
func Substitute(text string, tokens map[string]string) string {
	if len(tokens) == 0 {
		return text
	}
	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", tokens[k])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
