package toolchain

import (
	"context"

	"vscodeconfigurator/internal/logger"
)

// InitGitRepo runs `git init` in dir. Re-running it on an existing
// repository is harmless, so no overwrite check is made.
func (t *Toolchain) InitGitRepo(ctx context.Context, dir string) error {
	return t.generate(ctx, dir, "Initializing Git repository...", "", logger.Package, "git", "init")
}
