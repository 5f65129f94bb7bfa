package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vscodeconfigurator/internal/clierror"
	"vscodeconfigurator/internal/config"
	"vscodeconfigurator/internal/logger"
	"vscodeconfigurator/internal/paths"
	"vscodeconfigurator/internal/toolchain"
	"vscodeconfigurator/internal/vscode"
)

// rustAddOptions holds the flags of `rust add`.
type rustAddOptions struct {
	outputDirectory     string
	packageName         string
	packageFriendlyName string
	packageTemplate     config.PackageTemplate
	force               bool
}

func newRustAddCmd(a *app) *cobra.Command {
	opts := &rustAddOptions{packageTemplate: config.PackageTemplateLibrary}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a package to the Cargo workspace and to the VS Code tasks",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("package-template") {
				opts.packageTemplate = a.cfg.Rust.PackageTemplate
			}
			return runRustAdd(cmd.Context(), a, opts)
		}),
	}

	flags := addCmd.Flags()
	flags.StringVarP(&opts.outputDirectory, "output-directory", "o", ".", "Workspace directory")
	flags.StringVar(&opts.packageName, "package-name", "", "Name of the package to add")
	flags.StringVar(&opts.packageFriendlyName, "package-friendly-name", "", "Name shown in the VS Code task pickers")
	flags.Var(&opts.packageTemplate, "package-template", "Template used when the package does not exist yet (Binary or Library)")
	flags.BoolVarP(&opts.force, "force", "f", false, "Overwrite existing files without asking")
	_ = addCmd.MarkFlagRequired("package-name")
	_ = addCmd.MarkFlagDirname("output-directory")
	_ = addCmd.RegisterFlagCompletionFunc("package-template", packageTemplateCompletion)

	return addCmd
}

func runRustAdd(ctx context.Context, a *app, opts *rustAddOptions) error {
	dir, err := paths.RequireDir(opts.outputDirectory)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(opts.packageName)
	if name == "" {
		return &clierror.ArgumentError{Err: errors.New("--package-name must not be empty")}
	}
	friendly := opts.packageFriendlyName
	if friendly == "" {
		friendly = name
	}

	// Check both documents the command edits before cargo creates anything.
	tasks, err := vscode.PrepareTasks(dir, vscode.InputPackageName)
	if err != nil {
		return err
	}
	if _, err := toolchain.WorkspaceMembers(dir); err != nil {
		return err
	}

	m, err := a.materializer(ctx, opts.force)
	if err != nil {
		return err
	}
	tc := a.newToolchain(m)
	c := a.console

	c.Category("Add package")
	if !paths.Exists(filepath.Join(dir, name)) {
		if err := tc.InitPackage(ctx, dir, name, opts.packageTemplate, a.cfg.Rust.Edition); err != nil {
			return err
		}
	}
	if _, err := tc.RegisterWorkspaceMember(dir, name); err != nil {
		return err
	}

	c.Operation("Adding package to tasks.json...", logger.Document)
	if err := tasks.AddPackage(name, friendly); err != nil {
		c.Newline()
		return err
	}
	c.OperationDone()
	return nil
}
