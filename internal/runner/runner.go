package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"vscodeconfigurator/internal/logger"
)

// Runner runs external toolchain commands (git, dotnet, cargo).
type Runner interface {
	// Run executes name with args in dir and waits for it to finish.
	// A non-zero exit status is reported as a *ProcessError.
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ProcessError describes an external command that could not be started or
// exited with a non-zero status.
type ProcessError struct {
	Name   string
	Args   []string
	Code   int
	Output string
	Err    error
}

func (e *ProcessError) Error() string {
	cmdline := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	msg := fmt.Sprintf("'%s' failed: %v", cmdline, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\nOutput: " + out
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit status of the process, or -1 if it never ran.
func (e *ProcessError) ExitCode() int {
	return e.Code
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Console *logger.Console
}

// New returns an ExecRunner that logs command lines to console at debug level.
func New(console *logger.Console) *ExecRunner {
	return &ExecRunner{Console: console}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return &ProcessError{Name: name, Args: args, Code: -1, Err: fmt.Errorf("'%s' was not found in PATH: %w", name, err)}
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	if r.Console != nil {
		r.Console.Debug("\nRunning command: %s (in %s)\n", strings.Join(cmd.Args, " "), dir)
	}

	// Capture both stdout and stderr so failures can be reported in full
	output, err := cmd.CombinedOutput()
	if r.Console != nil && len(output) > 0 {
		r.Console.Debug("%s output:\n%s\n", name, output)
	}
	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ProcessError{Name: name, Args: args, Code: code, Output: string(output), Err: err}
	}
	return nil
}
