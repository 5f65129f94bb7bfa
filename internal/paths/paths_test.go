package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"vscodeconfigurator/internal/clierror"
)

func TestResolveExpandsHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME expansion is unix specific")
	}
	t.Setenv("HOME", "/home/u")

	got, err := Resolve("~/proj")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != "/home/u/proj" {
		t.Fatalf("Resolve(~/proj) = %q, want /home/u/proj", got)
	}

	got, err = Resolve("~")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != "/home/u" {
		t.Fatalf("Resolve(~) = %q, want /home/u", got)
	}
}

func TestExpandHomeLeavesUserForms(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	t.Setenv("USERPROFILE", "/home/u")

	for _, in := range []string{"~alice/proj", "~alice", "proj/~", "a~b"} {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error: %v", in, err)
		}
		if got != in {
			t.Errorf("ExpandHome(%q) = %q, want it unchanged", in, got)
		}
	}
}

func TestResolveMissingHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME expansion is unix specific")
	}
	t.Setenv("HOME", "")

	_, err := Resolve("~/proj")
	if kind, _ := clierror.KindOf(err); kind != clierror.UnsupportedOperatingSystem {
		t.Fatalf("expected UnsupportedOperatingSystem, got %v", err)
	}
}

func TestResolveRelativeTrailingSlash(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	tests := []string{"./proj/", "./proj", "proj/.", "./proj//"}
	for _, in := range tests {
		got, err := Resolve(in)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", in, err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("Resolve(%q) = %q is not absolute", in, got)
		}
		if strings.HasSuffix(got, string(filepath.Separator)) {
			t.Errorf("Resolve(%q) = %q has trailing separator", in, got)
		}
		if want := filepath.Join(cwd, "proj"); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveAndCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	got, err := ResolveAndCreate(dir + "/")
	if err != nil {
		t.Fatalf("ResolveAndCreate error: %v", err)
	}
	if got != dir {
		t.Fatalf("got %q want %q", got, dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("directory was not created: %v", err)
	}

	// second call is a no-op
	if _, err := ResolveAndCreate(dir); err != nil {
		t.Fatalf("second ResolveAndCreate error: %v", err)
	}
}

func TestEnsureDirOnFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(file); err == nil {
		t.Fatal("expected error for a regular file")
	}
}

func TestRequireDir(t *testing.T) {
	root := t.TempDir()
	if _, err := RequireDir(root); err != nil {
		t.Fatalf("RequireDir on existing dir: %v", err)
	}

	_, err := RequireDir(filepath.Join(root, "missing"))
	if kind, _ := clierror.KindOf(err); kind != clierror.OutputDirectoryDoesNotExist {
		t.Fatalf("expected OutputDirectoryDoesNotExist, got %v", err)
	}
}
