package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCompletionsCmd prints shell completion scripts.
func newCompletionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "completions SHELL",
		Short:     "Generate the completion script for a shell (bash, zsh, fish, powershell)",
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell %q", args[0])
			}
		}),
	}
}
