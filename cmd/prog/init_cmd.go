package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/output"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Output shell wrapper function",
		GroupID:   GroupConfig,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.ExactArgs(1),
		Long: `Output a shell function "p" that changes into a repository.

A subprocess cannot change the parent shell's directory, so "prog find"
only prints the path. "p <keyword>" runs "prog find -q" and cds into the
result; "p" alone returns to the most recently visited repository. Other
arguments are passed to prog unchanged, e.g. "p sync".`,
		Example: `  eval "$(prog init bash)"     # add to ~/.bashrc
  eval "$(prog init zsh)"      # add to ~/.zshrc
  prog init fish | source      # add to ~/.config/fish/config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := initScript(args[0])
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Print(script)
			return nil
		},
	}

	return cmd
}

func initScript(shell string) (string, error) {
	switch shell {
	case "fish":
		return fishInit, nil
	case "bash", "zsh":
		return posixInit(shell), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: fish, bash, zsh)", shell)
	}
}

func posixInit(shell string) string {
	return fmt.Sprintf(`# prog shell wrapper
# Install: eval "$(prog init %s)"

p() {
    case "$1" in
        find|sync|list|ls|add|clone|import|remove|rm|reset|clean|migrate|config|init|completion|help|-*)
            command prog "$@"
            ;;
        *)
            local dir
            dir="$(command prog find -q "$@")" && cd "$dir"
            ;;
    esac
}
`, shell)
}

const fishInit = `# prog shell wrapper
# Install: prog init fish | source

function p --wraps=prog --description 'Jump to a repository'
    switch "$argv[1]"
        case find sync list ls add clone import remove rm reset clean migrate config init completion help '-*'
            command prog $argv
        case '*'
            set -l dir (command prog find -q $argv)
            and cd $dir
    end
end
`
