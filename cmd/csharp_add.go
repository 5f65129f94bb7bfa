package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vscodeconfigurator/internal/clierror"
	"vscodeconfigurator/internal/logger"
	"vscodeconfigurator/internal/vscode"
)

// csharpAddOptions holds the flags of `csharp add`.
type csharpAddOptions struct {
	solutionFilePath    string
	projectPath         string
	projectFriendlyName string
	isRunnable          bool
	isWatchable         bool
}

func newCsharpAddCmd(a *app) *cobra.Command {
	opts := &csharpAddOptions{}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project to the solution and to the VS Code tasks",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			return runCsharpAdd(cmd.Context(), a, opts)
		}),
	}

	flags := addCmd.Flags()
	flags.StringVar(&opts.solutionFilePath, "solution-file-path", "", "Solution file (default: the .sln in the current directory)")
	flags.StringVar(&opts.projectPath, "project-path", "", "Project directory or .csproj file to add")
	flags.StringVar(&opts.projectFriendlyName, "project-friendly-name", "", "Name shown in the VS Code task pickers")
	flags.BoolVar(&opts.isRunnable, "is-runnable", false, "Offer the project in the 'Run project' task")
	flags.BoolVar(&opts.isWatchable, "is-watchable", false, "Offer the project in the 'Watch project' task")
	_ = addCmd.MarkFlagRequired("project-path")
	_ = addCmd.MarkFlagFilename("solution-file-path", "sln", "slnx")

	return addCmd
}

// solutionExtensions are the solution formats recognized during discovery.
var solutionExtensions = []string{".sln", ".slnx"}

// findSolution returns the first solution file in dir.
func findSolution(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range solutionExtensions {
			if ext == want {
				return filepath.Join(dir, entry.Name()), nil
			}
		}
	}
	return "", clierror.New(clierror.FilePathDoesNotExist, "No solution file found in the current directory.")
}

// projectFriendlyName returns the name of the first .csproj in the project
// directory, or the stem of the project file itself.
func projectFriendlyName(project string) (string, error) {
	info, err := os.Stat(project)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return strings.TrimSuffix(filepath.Base(project), filepath.Ext(project)), nil
	}

	entries, err := os.ReadDir(project)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".csproj") {
			return strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())), nil
		}
	}
	return "", clierror.Newf(clierror.FilePathDoesNotExist, "No project file found in '%s'.", project)
}

func runCsharpAdd(ctx context.Context, a *app, opts *csharpAddOptions) error {
	var solution string
	if opts.solutionFilePath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if solution, err = findSolution(cwd); err != nil {
			return err
		}
	} else {
		abs, err := filepath.Abs(opts.solutionFilePath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(abs); err != nil {
			return clierror.Newf(clierror.FilePathDoesNotExist,
				"The solution file path '%s' does not exist.", opts.solutionFilePath)
		}
		solution = abs
	}

	project, err := filepath.Abs(opts.projectPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(project); err != nil {
		return clierror.Newf(clierror.FilePathDoesNotExist,
			"The project path '%s' does not exist.", opts.projectPath)
	}

	friendly := opts.projectFriendlyName
	if friendly == "" {
		if friendly, err = projectFriendlyName(project); err != nil {
			return err
		}
	}

	solutionDir := filepath.Dir(solution)
	value := opts.projectPath
	if rel, err := filepath.Rel(solutionDir, project); err == nil {
		value = rel
	}
	value = filepath.ToSlash(value)
	a.console.Debug("Solution: %s, project: %s (%s)\n", solution, value, friendly)

	// The tasks file is checked before the solution is touched.
	ids := vscode.ProjectInputs(opts.isRunnable, opts.isWatchable)
	tasks, err := vscode.PrepareTasks(solutionDir, ids...)
	if err != nil {
		return err
	}

	m, err := a.materializer(ctx, false)
	if err != nil {
		return err
	}
	tc := a.newToolchain(m)
	c := a.console

	c.Category("Add project")
	if err := tc.AddProjectToSolution(ctx, solution, project); err != nil {
		return err
	}

	c.Operation("Adding C# project to tasks.json...", logger.Document)
	if err := tasks.AddProject(value, friendly, ids); err != nil {
		c.Newline()
		return err
	}
	c.OperationDone()
	return nil
}
