package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"vscodeconfigurator/internal/clierror"
	"vscodeconfigurator/internal/config"
	"vscodeconfigurator/internal/logger"
	"vscodeconfigurator/internal/paths"
	"vscodeconfigurator/internal/templates"
	"vscodeconfigurator/internal/vscode"
)

// csharpInitOptions holds the flags of `csharp init`.
type csharpInitOptions struct {
	outputDirectory                string
	solutionName                   string
	addGitVersion                  bool
	addNugetConfig                 bool
	enableCentrallyManagedPackages bool
	csharpLsp                      config.CsharpLsp
	force                          bool
}

func newCsharpInitCmd(a *app) *cobra.Command {
	opts := &csharpInitOptions{}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new C# solution with a VS Code workspace",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("csharp-lsp") {
				opts.csharpLsp = a.cfg.Csharp.Lsp
			}
			return runCsharpInit(cmd.Context(), a, opts)
		}),
	}

	opts.csharpLsp = config.CsharpLspDefault

	flags := initCmd.Flags()
	flags.StringVarP(&opts.outputDirectory, "output-directory", "o", ".", "Directory to initialize")
	flags.StringVarP(&opts.solutionName, "solution-name", "n", "", "Solution name (default: name of the output directory)")
	flags.BoolVar(&opts.addGitVersion, "add-gitversion", false, "Install GitVersion as a local .NET tool")
	flags.BoolVar(&opts.addNugetConfig, "add-nuget-config", false, "Add a NuGet.Config file")
	flags.BoolVar(&opts.enableCentrallyManagedPackages, "enable-centrally-managed-packages", false,
		"Add a Directory.Packages.props file")
	flags.Var(&opts.csharpLsp, "csharp-lsp", "C# language server (CsharpLsp or OmniSharp)")
	flags.BoolVarP(&opts.force, "force", "f", false, "Overwrite existing files without asking")

	_ = initCmd.RegisterFlagCompletionFunc("csharp-lsp", cobra.FixedCompletions(
		[]string{string(config.CsharpLspDefault), string(config.CsharpLspOmniSharp)}, cobra.ShellCompDirectiveNoFileComp))
	_ = initCmd.MarkFlagDirname("output-directory")

	return initCmd
}

// solutionNameFor returns the solution name, falling back to the base name
// of the output directory.
func solutionNameFor(name, dir string) (string, error) {
	if name == "" {
		name = filepath.Base(dir)
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", clierror.New(clierror.UnableToParseSolutionName, "The solution name could not be determined.")
	}
	return name, nil
}

func runCsharpInit(ctx context.Context, a *app, opts *csharpInitOptions) error {
	dir, err := paths.ResolveAndCreate(opts.outputDirectory)
	if err != nil {
		return err
	}

	solutionName, err := solutionNameFor(opts.solutionName, dir)
	if err != nil {
		return err
	}
	a.console.Debug("Initializing solution '%s' in %s\n", solutionName, dir)

	m, err := a.materializer(ctx, opts.force)
	if err != nil {
		return err
	}
	tc := a.newToolchain(m)
	c := a.console

	c.Category("Basic")
	if err := tc.AddGlobalJSON(ctx, dir, a.cfg.Csharp.RollForward); err != nil {
		return err
	}

	c.Newline()
	c.Category("Git")
	if err := tc.InitGitRepo(ctx, dir); err != nil {
		return err
	}
	if err := tc.AddGitignore(ctx, dir); err != nil {
		return err
	}

	c.Newline()
	c.Category(".NET")
	if err := tc.NewSolution(ctx, dir, solutionName); err != nil {
		return err
	}
	if err := tc.AddBuildProps(ctx, dir); err != nil {
		return err
	}
	if opts.addNugetConfig {
		if err := tc.AddNugetConfig(ctx, dir); err != nil {
			return err
		}
	}
	if opts.enableCentrallyManagedPackages {
		if err := tc.AddPackagesProps(ctx, dir); err != nil {
			return err
		}
	}

	if opts.addGitVersion {
		c.Newline()
		c.Category("GitVersion")
		if err := tc.AddTool(ctx, dir, "GitVersion.Tool"); err != nil {
			return err
		}
		gitVersion := templates.NewTemplateFile("csharp/GitVersion/GitVersion.yml",
			filepath.Join(dir, "GitVersion.yml"), "project root")
		if err := m.Copy(gitVersion); err != nil {
			return err
		}
	}

	c.Newline()
	c.Category("VSCode")
	if _, err := m.EnsureDir(dir, ".vscode"); err != nil {
		return err
	}

	tokens := map[string]string{"solutionName": solutionName + ".sln"}
	settings := templates.NewTemplateFile("csharp/VSCode/settings.json", vscode.SettingsPath(dir), "'.vscode' directory")
	if err := m.Render(settings, tokens); err != nil {
		return err
	}

	c.Operation("Updating C# LSP option in settings.json...", logger.Document)
	if err := vscode.UpdateCsharpLsp(dir, opts.csharpLsp); err != nil {
		c.Newline()
		return err
	}
	c.OperationDone()

	tasks := templates.NewTemplateFile("csharp/VSCode/tasks.json", vscode.TasksPath(dir), "'.vscode' directory")
	if err := m.Render(tasks, tokens); err != nil {
		return err
	}

	c.Newline()
	c.ProjectInitialized()
	return nil
}
