// Package toolchain drives the external tools (git, dotnet, cargo) that
// create the files of a new workspace.
package toolchain

import (
	"context"
	"path/filepath"

	"vscodeconfigurator/internal/logger"
	"vscodeconfigurator/internal/runner"
)

// Guard decides whether an existing path may be replaced. It removes the
// path and returns true when the caller may go ahead.
type Guard interface {
	Guard(dest string) (bool, error)
}

// Toolchain runs toolchain commands and reports progress on a console.
type Toolchain struct {
	Runner  runner.Runner
	Console *logger.Console
	Guard   Guard
}

// New returns a Toolchain.
func New(r runner.Runner, console *logger.Console, guard Guard) *Toolchain {
	return &Toolchain{Runner: r, Console: console, Guard: guard}
}

// generate runs a command that creates output inside dir, applying the
// overwrite policy to output first.
func (t *Toolchain) generate(ctx context.Context, dir, label, output string, emoji logger.Emoji, name string, args ...string) error {
	t.Console.Operation(label, emoji)

	// Commands that only change existing state have no output to guard
	if output != "" {
		ok, err := t.Guard.Guard(filepath.Join(dir, output))
		if err != nil || !ok {
			return err // declined: the line already says "Already exists"
		}
	}

	// Run the tool; a non-zero exit status fails the step
	if err := t.Runner.Run(ctx, dir, name, args...); err != nil {
		t.Console.Newline() // finish the pending operation line before the banner
		return err
	}

	t.Console.OperationDone()
	return nil
}
