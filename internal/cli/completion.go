package cli

import (
	"os"

	"github.com/spf13/cobra"

	plerrors "github.com/princespaghetti/plfetch/internal/errors"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for bash or zsh.

To load completions:

Bash:

  $ source <(plfetch completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ plfetch completion bash > /etc/bash_completion.d/plfetch
  # macOS:
  $ plfetch completion bash > $(brew --prefix)/etc/bash_completion.d/plfetch

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ plfetch completion zsh > "${fpath[1]}/_plfetch"

  # You will need to start a new shell for this setup to take effect.

Example usage:
  plfetch completion bash > /usr/local/etc/bash_completion.d/plfetch
  plfetch completion zsh > ~/.zsh/completions/_plfetch`,
	ValidArgs: []string{"bash", "zsh"},
	Args:      cobra.ExactValidArgs(1),
	RunE:      runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	shell := args[0]

	switch shell {
	case "bash":
		if err := cmd.Root().GenBashCompletion(os.Stdout); err != nil {
			Error("Failed to generate bash completion: %v", err)
			os.Exit(plerrors.ExitGeneralError)
		}
	case "zsh":
		if err := cmd.Root().GenZshCompletion(os.Stdout); err != nil {
			Error("Failed to generate zsh completion: %v", err)
			os.Exit(plerrors.ExitGeneralError)
		}
	default:
		Error("Unsupported shell: %s. Supported shells: bash, zsh", shell)
		os.Exit(plerrors.ExitConfigError)
	}

	return nil
}
