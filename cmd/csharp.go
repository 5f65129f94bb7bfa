package cmd

import "github.com/spf13/cobra"

// newCsharpCmd groups the C# commands.
func newCsharpCmd(a *app) *cobra.Command {
	csharpCmd := &cobra.Command{
		Use:   "csharp",
		Short: "Create and manage C# solutions",
		Args:  cobra.NoArgs,
		RunE:  a.run(a.requireSubcommand),
	}

	csharpCmd.AddCommand(newCsharpInitCmd(a))
	csharpCmd.AddCommand(newCsharpAddCmd(a))

	return csharpCmd
}
