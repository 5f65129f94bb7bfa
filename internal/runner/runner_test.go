package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"vscodeconfigurator/internal/logger"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunSuccessInDir(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	var out bytes.Buffer
	console := logger.NewWithOptions(logger.Options{Out: &out, ErrOut: &out, Debug: true})
	r := New(console)

	if err := r.Run(context.Background(), dir, "sh", "-c", "touch marker && echo created"); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(out.String(), "Running command: sh -c") {
		t.Fatalf("command line not logged at debug level: %q", out.String())
	}
	if !strings.Contains(out.String(), "created") {
		t.Fatalf("command output not logged: %q", out.String())
	}
}

func TestRunNonZeroExit(t *testing.T) {
	requireShell(t)

	err := New(nil).Run(context.Background(), t.TempDir(), "sh", "-c", "echo nope >&2; exit 3")
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ProcessError, got %T %v", err, err)
	}
	if procErr.ExitCode() != 3 {
		t.Fatalf("exit code = %d, want 3", procErr.ExitCode())
	}
	if !strings.Contains(procErr.Error(), "nope") {
		t.Fatalf("output missing from error: %q", procErr.Error())
	}
}

func TestRunMissingBinary(t *testing.T) {
	err := New(nil).Run(context.Background(), t.TempDir(), "definitely-not-a-real-binary-xyz")
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ProcessError, got %T %v", err, err)
	}
	if procErr.ExitCode() != -1 {
		t.Fatalf("exit code = %d, want -1", procErr.ExitCode())
	}
}
