package main

import (
	"os"

	"github.com/spf13/cobra"
)

func NewCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

### Bash:

  $ source <(jellyctl completion bash)

  # To load completions for each session, execute once:

  # Linux:

  $ jellyctl completion bash | sudo tee /etc/bash_completion.d/jellyctl

  # macOS:

  $ jellyctl completion bash | sudo tee /usr/local/etc/bash_completion.d/jellyctl

### Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:

  $ jellyctl completion zsh > "${fpath[1]}/_jellyctl"

  # You will need to start a new shell for this setup to take effect.

### Fish:

  $ jellyctl completion fish | source

### PowerShell:

  PS> jellyctl completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		DisableAutoGenTag:     true,
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
