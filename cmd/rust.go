package cmd

import (
	"github.com/spf13/cobra"

	"vscodeconfigurator/internal/config"
)

// newRustCmd groups the Rust commands.
func newRustCmd(a *app) *cobra.Command {
	rustCmd := &cobra.Command{
		Use:   "rust",
		Short: "Create and manage Rust workspaces",
		Args:  cobra.NoArgs,
		RunE:  a.run(a.requireSubcommand),
	}

	rustCmd.AddCommand(newRustInitCmd(a))
	rustCmd.AddCommand(newRustAddCmd(a))

	return rustCmd
}

// packageTemplateCompletion completes Binary/Library flag values.
var packageTemplateCompletion = cobra.FixedCompletions(
	[]string{string(config.PackageTemplateBinary), string(config.PackageTemplateLibrary)},
	cobra.ShellCompDirectiveNoFileComp,
)
