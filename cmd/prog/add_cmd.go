package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <url> [-- git clone args...]",
		Short:   "Clone a repository into the base layout",
		Aliases: []string{"clone"},
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: `Clone a repository to <base>/<host>/<owner>/<repo> and index it.

The first configured base is used. URL aliases from the [alias] config
section are expanded first, so "github://owner/repo" works out of the box.
Arguments after -- are passed to git clone unchanged.

If the target already exists it is only indexed. The path is printed and
copied to the clipboard.`,
		Example: `  prog add https://github.com/spf13/cobra
  prog add git@github.com:charmbracelet/bubbletea.git
  prog add github://raphi011/wt -- --depth 1
  cd "$(prog add gitlab://group/sub/project)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return addRepo(ctx, config.FromContext(ctx), args[0], args[1:])
		},
	}

	return cmd
}
