package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vscodeconfigurator/internal/clierror"
	"vscodeconfigurator/internal/config"
	"vscodeconfigurator/internal/paths"
	"vscodeconfigurator/internal/templates"
	"vscodeconfigurator/internal/vscode"
)

// rustInitOptions holds the flags of `rust init`.
type rustInitOptions struct {
	outputDirectory     string
	packageName         string
	basePackageTemplate config.PackageTemplate
	force               bool
}

func newRustInitCmd(a *app) *cobra.Command {
	opts := &rustInitOptions{basePackageTemplate: config.PackageTemplateLibrary}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new Cargo workspace with a VS Code workspace",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("base-package-template") {
				opts.basePackageTemplate = a.cfg.Rust.PackageTemplate
			}
			return runRustInit(cmd.Context(), a, opts)
		}),
	}

	flags := initCmd.Flags()
	// --package-name is accepted as an alias of --base-package-name
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "package-name" {
			name = "base-package-name"
		}
		return pflag.NormalizedName(name)
	})
	flags.StringVarP(&opts.outputDirectory, "output-directory", "o", ".", "Directory to initialize")
	flags.StringVarP(&opts.packageName, "base-package-name", "n", "", "Name of the base package")
	flags.Var(&opts.basePackageTemplate, "base-package-template", "Template of the base package (Binary or Library)")
	flags.BoolVarP(&opts.force, "force", "f", false, "Overwrite existing files without asking")
	_ = initCmd.MarkFlagRequired("base-package-name")
	_ = initCmd.MarkFlagDirname("output-directory")
	_ = initCmd.RegisterFlagCompletionFunc("base-package-template", packageTemplateCompletion)

	return initCmd
}

func runRustInit(ctx context.Context, a *app, opts *rustInitOptions) error {
	dir, err := paths.ResolveAndCreate(opts.outputDirectory)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(opts.packageName)
	if name == "" {
		return &clierror.ArgumentError{Err: errors.New("--base-package-name must not be empty")}
	}
	a.console.Debug("Initializing workspace with package '%s' in %s\n", name, dir)

	m, err := a.materializer(ctx, opts.force)
	if err != nil {
		return err
	}
	tc := a.newToolchain(m)
	c := a.console

	c.Category("Git")
	if err := tc.InitGitRepo(ctx, dir); err != nil {
		return err
	}
	gitignore := templates.NewTemplateFile("rust/Git/gitignore", filepath.Join(dir, ".gitignore"), "project root")
	if err := m.Copy(gitignore); err != nil {
		return err
	}

	c.Newline()
	c.Category("Cargo")
	manifest := templates.NewTemplateFile("rust/Cargo/Cargo.workspace.toml", filepath.Join(dir, "Cargo.toml"), "project root")
	if err := m.Copy(manifest); err != nil {
		return err
	}
	if err := tc.InitPackage(ctx, dir, name, opts.basePackageTemplate, a.cfg.Rust.Edition); err != nil {
		return err
	}
	if _, err := tc.RegisterWorkspaceMember(dir, name); err != nil {
		return err
	}

	c.Newline()
	c.Category("VSCode")
	if _, err := m.EnsureDir(dir, ".vscode"); err != nil {
		return err
	}
	settings := templates.NewTemplateFile("rust/VSCode/settings.json", vscode.SettingsPath(dir), "'.vscode' directory")
	if err := m.Copy(settings); err != nil {
		return err
	}
	tasks := templates.NewTemplateFile("rust/VSCode/tasks.json", vscode.TasksPath(dir), "'.vscode' directory")
	if err := m.Render(tasks, map[string]string{"basePackageName": name}); err != nil {
		return err
	}

	c.Newline()
	c.Category("Tools")
	toolsDir, err := m.EnsureDir(dir, "tools")
	if err != nil {
		return err
	}
	for _, script := range []string{"Build-Package.ps1", "Clean-Package.ps1"} {
		tf := templates.NewTemplateFile("rust/Tools/"+script, filepath.Join(toolsDir, script), "tools dir")
		if err := m.Copy(tf); err != nil {
			return err
		}
	}

	c.Newline()
	c.ProjectInitialized()
	return nil
}
