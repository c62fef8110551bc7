package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/output"
	"github.com/raphi011/prog/internal/scan"
)

func newSyncCmd() *cobra.Command {
	var silent bool

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Rebuild the index from the base directories",
		GroupID: GroupIndex,
		Args:    cobra.NoArgs,
		Long: `Walk every base directory and rebuild the index.

Directories up to three levels deep (host/owner/repo) that contain .git are
indexed by their origin URL. Repositories without an origin, or whose URL
cannot be parsed, are skipped with a warning. Hidden directories and
symlinks are ignored.`,
		Example: `  prog sync            # rebuild, with a spinner on a terminal
  prog sync --silent   # no spinner, e.g. from cron
  prog sync -v         # show every repository and git call`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if err := requireBase(cfg); err != nil {
				return err
			}

			db := database.Load(ctx, cfg.DataFile())
			stats, err := scan.Sync(ctx, db, newWalker(cfg), cfg.Base, silent)
			if err != nil {
				return err
			}

			out.Printf("Indexed %d repositories in %s\n", stats.Found, stats.Elapsed.Round(time.Millisecond))
			if n := len(stats.Skipped); n > 0 {
				l.Printf("Skipped %d directories (run with -v for details)\n", n)
				for _, s := range stats.Skipped {
					l.Debug("skipped", "path", s.Path, "reason", s.Reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&silent, "silent", "s", false, "Do not show a spinner")

	return cmd
}
