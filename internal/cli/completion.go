package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand prints a shell completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Print a completion script for the given shell to stdout.

The script enables tab completion for flowgrid commands and flags.
Source it directly to try it out:

  source <(flowgrid completion bash)
  flowgrid completion fish | source
  flowgrid completion powershell | Out-String | Invoke-Expression

or install it where your shell picks it up on startup:

  flowgrid completion bash > /etc/bash_completion.d/flowgrid
  flowgrid completion zsh > "${fpath[1]}/_flowgrid"
  flowgrid completion fish > ~/.config/fish/completions/flowgrid.fish

Zsh needs compinit enabled for completions to work at all:

  echo "autoload -U compinit; compinit" >> ~/.zshrc
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
