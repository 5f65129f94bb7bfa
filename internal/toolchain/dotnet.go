package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"vscodeconfigurator/internal/logger"
)

// ToolManifestPath is the local .NET tool manifest, relative to the
// solution directory.
var ToolManifestPath = filepath.Join(".config", "dotnet-tools.json")

// dotnetNew runs a `dotnet new` template that writes output into dir.
func (t *Toolchain) dotnetNew(ctx context.Context, dir, output string, args ...string) error {
	label := fmt.Sprintf("Adding '%s' to project root...", output)
	return t.generate(ctx, dir, label, output, logger.Document, "dotnet", append([]string{"new"}, args...)...)
}

// AddGlobalJSON creates global.json with the given roll-forward policy.
func (t *Toolchain) AddGlobalJSON(ctx context.Context, dir, rollForward string) error {
	return t.dotnetNew(ctx, dir, "global.json", "globaljson", "--roll-forward", rollForward)
}

// AddGitignore creates the .NET flavored .gitignore.
func (t *Toolchain) AddGitignore(ctx context.Context, dir string) error {
	return t.dotnetNew(ctx, dir, ".gitignore", "gitignore")
}

// NewSolution creates <name>.sln.
func (t *Toolchain) NewSolution(ctx context.Context, dir, name string) error {
	output := name + ".sln"
	label := fmt.Sprintf("Initializing .NET solution '%s'...", output)
	return t.generate(ctx, dir, label, output, logger.Package, "dotnet", "new", "sln", "--name", name)
}

// AddBuildProps creates Directory.Build.props using the artifacts output layout.
func (t *Toolchain) AddBuildProps(ctx context.Context, dir string) error {
	return t.dotnetNew(ctx, dir, "Directory.Build.props", "buildprops", "--use-artifacts")
}

// AddNugetConfig creates NuGet.Config.
func (t *Toolchain) AddNugetConfig(ctx context.Context, dir string) error {
	return t.dotnetNew(ctx, dir, "NuGet.Config", "nugetconfig")
}

// AddPackagesProps creates Directory.Packages.props for centrally managed
// package versions.
func (t *Toolchain) AddPackagesProps(ctx context.Context, dir string) error {
	return t.dotnetNew(ctx, dir, "Directory.Packages.props", "packagesprops")
}

// AddTool installs a local .NET tool, creating the tool manifest first
// when the solution does not have one.
func (t *Toolchain) AddTool(ctx context.Context, dir, tool string) error {
	// `dotnet tool install` fails without a manifest to record the tool in
	if _, err := os.Stat(filepath.Join(dir, ToolManifestPath)); os.IsNotExist(err) {
		err := t.generate(ctx, dir, "Initializing .NET tool manifest...", "", logger.Package,
			"dotnet", "new", "tool-manifest")
		if err != nil {
			return err
		}
	}

	// Point at the manifest explicitly so a parent directory's manifest is not used
	label := fmt.Sprintf("Adding .NET tool '%s'...", tool)
	return t.generate(ctx, dir, label, "", logger.Package,
		"dotnet", "tool", "install", tool, "--tool-manifest", filepath.ToSlash(ToolManifestPath))
}

// AddProjectToSolution runs `dotnet sln <solution> add <project>` from the
// solution directory.
func (t *Toolchain) AddProjectToSolution(ctx context.Context, solution, project string) error {
	dir := filepath.Dir(solution)

	// Log the project relative to the solution, the way it appears in the .sln
	rel, err := filepath.Rel(dir, project)
	if err != nil {
		rel = project
	}

	label := fmt.Sprintf("Adding '%s' to solution...", filepath.ToSlash(rel))
	return t.generate(ctx, dir, label, "", logger.Document, "dotnet", "sln", solution, "add", project)
}
