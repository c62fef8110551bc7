package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/git"
	"github.com/raphi011/prog/internal/log"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import <path>",
		Short:   "Clone an existing checkout into the base layout",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Read the origin URL of a repository outside the base directories and
clone it into the layout, as "prog add" would.

The original checkout is left untouched.`,
		Example: `  prog import ~/Downloads/some-project
  prog import .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if !git.IsGitRepo(dir) {
				return fmt.Errorf("not a git repository: %s", dir)
			}

			url, err := git.OriginURL(ctx, dir)
			if err != nil {
				return err
			}
			if url == "" {
				return fmt.Errorf("%s has no origin remote", dir)
			}
			l.Debug("importing", "path", dir, "url", url)

			return addRepo(ctx, cfg, url, nil)
		},
	}

	return cmd
}
