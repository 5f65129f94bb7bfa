package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"vscodeconfigurator/internal/clierror"
)

// homeEnvVar returns the environment variable holding the user's home
// directory on the current operating system family.
func homeEnvVar() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

// ExpandHome replaces a leading "~" with the user's home directory. Only a
// bare "~" or "~" followed by a separator is expanded; "~user" forms and
// paths that do not start with "~" are returned unchanged.
func ExpandHome(raw string) (string, error) {
	if raw != "~" && !strings.HasPrefix(raw, "~/") && !strings.HasPrefix(raw, `~\`) {
		return raw, nil
	}

	key := homeEnvVar()
	home, ok := os.LookupEnv(key)
	if !ok || home == "" {
		return "", clierror.Newf(clierror.UnsupportedOperatingSystem,
			"The home directory could not be determined: %s is not set.", key)
	}

	rest := strings.TrimPrefix(raw, "~")
	rest = strings.TrimLeft(rest, `/\`)
	return filepath.Join(home, rest), nil
}

// Resolve turns a user supplied directory into a canonical absolute path:
// "~" is expanded, relative paths are made absolute against the working
// directory and trailing separators and "." segments are removed.
func Resolve(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		raw = "."
	}

	expanded, err := ExpandHome(raw)
	if err != nil {
		return "", err
	}

	// filepath.Abs also cleans the result, which drops trailing slashes
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s: %w", raw, err)
	}
	return abs, nil
}

// EnsureDir creates dir (and any missing parents) when it does not exist.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("output path %s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to inspect %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ResolveAndCreate resolves raw and makes sure the directory exists.
func ResolveAndCreate(raw string) (string, error) {
	dir, err := Resolve(raw)
	if err != nil {
		return "", err
	}
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// RequireDir resolves raw and fails with OutputDirectoryDoesNotExist when
// the directory is missing.
func RequireDir(raw string) (string, error) {
	dir, err := Resolve(raw)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", clierror.Newf(clierror.OutputDirectoryDoesNotExist,
			"The specified output directory '%s' does not exist.", dir)
	}
	return dir, nil
}

// Exists reports whether something is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
