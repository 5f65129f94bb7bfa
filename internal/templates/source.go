package templates

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"vscodeconfigurator/internal/paths"
)

//go:embed all:files
var builtin embed.FS

// Source is where template files are read from.
type Source interface {
	// FS returns the template tree. Paths look like "rust/VSCode/tasks.json".
	FS(ctx context.Context) (fs.FS, error)

	// Describe returns a short human readable description of the source.
	Describe() string

	// Close releases anything the source had to materialize on disk.
	Close() error
}

// EmbeddedSource serves the templates compiled into the binary.
type EmbeddedSource struct{}

// NewEmbeddedSource returns the built-in template source.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

func (e *EmbeddedSource) FS(ctx context.Context) (fs.FS, error) {
	return fs.Sub(builtin, "files")
}

func (e *EmbeddedSource) Describe() string { return "built-in templates" }

func (e *EmbeddedSource) Close() error { return nil }

// DirSource serves templates from a directory on disk.
type DirSource struct {
	path string
}

// NewDirSource wraps path with an os.DirFS.
func NewDirSource(path string) *DirSource {
	return &DirSource{path: path}
}

func (d *DirSource) FS(ctx context.Context) (fs.FS, error) {
	return os.DirFS(d.path), nil
}

func (d *DirSource) Describe() string { return d.path }

func (d *DirSource) Close() error { return nil }

// ArchiveSource serves templates from a bundle archive, extracted lazily to
// a temporary directory that is removed by Close.
type ArchiveSource struct {
	archive string
	tempDir string
	root    string
	once    sync.Once
	err     error
}

// NewArchiveSource returns a source backed by the given archive.
func NewArchiveSource(archive string) *ArchiveSource {
	return &ArchiveSource{archive: archive}
}

func (a *ArchiveSource) FS(ctx context.Context) (fs.FS, error) {
	a.once.Do(func() {
		a.root, a.err = a.extract(ctx)
	})
	if a.err != nil {
		return nil, a.err
	}
	return os.DirFS(a.root), nil
}

func (a *ArchiveSource) Describe() string { return a.archive }

func (a *ArchiveSource) Close() error {
	if a.tempDir != "" {
		return os.RemoveAll(a.tempDir)
	}
	return nil
}

func (a *ArchiveSource) extract(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tempDir, err := os.MkdirTemp("", "vscodeconfigurator-templates-*")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}
	a.tempDir = tempDir

	if err := ExtractArchive(a.archive, tempDir); err != nil {
		return "", fmt.Errorf("extracting template bundle %s: %w", a.archive, err)
	}
	return bundleRoot(tempDir)
}

// bundleRoot finds the directory holding the language folders. Bundles may
// either contain "csharp/" and "rust/" at the top level or wrap them in a
// single directory such as "templates/".
func bundleRoot(dir string) (string, error) {
	for _, lang := range []string{"csharp", "rust"} {
		if info, err := os.Stat(filepath.Join(dir, lang)); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return bundleRoot(filepath.Join(dir, entries[0].Name()))
	}
	return "", fmt.Errorf("no 'csharp' or 'rust' template directory found in bundle")
}

// Resolve picks the template source.
//
// An explicit path (directory or archive) wins. Otherwise a "templates"
// directory next to the executable is used when present, falling back to
// the built-in templates.
func Resolve(path string) (Source, error) {
	if path != "" {
		expanded, err := paths.ExpandHome(path)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			return nil, fmt.Errorf("template source %s: %w", path, err)
		}
		if info.IsDir() {
			return NewDirSource(expanded), nil
		}
		if IsArchive(expanded) {
			return NewArchiveSource(expanded), nil
		}
		return nil, fmt.Errorf("template source %s is neither a directory nor a supported archive", path)
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "templates")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return NewDirSource(dir), nil
		}
	}

	return NewEmbeddedSource(), nil
}
