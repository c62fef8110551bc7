package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/history"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/output"
	"github.com/raphi011/prog/internal/scan"
	"github.com/raphi011/prog/internal/ui/prompt"
)

func newFindCmd() *cobra.Command {
	var (
		query       bool
		all         bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:               "find [keyword]",
		Short:             "Print the path of a repository matching keyword",
		Aliases:           []string{"f"},
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeRepoNames,
		Long: `Print the path of the repository that best matches keyword.

Matches are ranked: exact repository name, exact owner/repo, name
substring, path substring, exact owner, owner substring, remote URL
substring, then word-wise fuzzy matches on the name. A keyword that is a
remote URL is reduced to owner/repo first. When keyword equals a host or
owner, that directory is offered too.

One match is printed and copied to the clipboard. Several matches open a
picker on a terminal and are all printed otherwise.

Without keyword the most recently found repository is printed.`,
		Example: `  cd "$(prog find -q wt)"        # cd into the best match
  prog find bubble               # pick among several matches
  prog find -a tea               # print all matches in rank order
  prog find -i                   # pick from every repository, recent first
  prog find git@github.com:spf13/cobra.git`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			db := openDatabase(ctx, cfg, true)

			histPath := history.Path(cfg.DataDir)
			hist, err := history.Load(histPath)
			if err != nil {
				l.Warn("failed to load history", "err", err)
				hist = &history.History{}
			}

			var cands []candidate
			title := "Which repository?"
			switch {
			case len(args) == 1:
				var stale bool
				cands, stale = findCandidates(db, args[0], pathExists)
				if stale {
					resync(ctx, cfg, db)
					cands, _ = findCandidates(db, args[0], pathExists)
				}
				if len(cands) == 0 {
					return noMatchError(db, args[0])
				}
				title = "Several repositories match " + args[0]
			case interactive:
				cands = recentCandidates(db, hist, pathExists)
				if len(cands) == 0 {
					return errors.New("no repositories indexed (run prog sync)")
				}
			default:
				if removed := hist.RemoveStale(); removed > 0 {
					l.Debug("dropped stale history entries", "count", removed)
				}
				entry, ok := hist.MostRecent()
				if !ok {
					return errors.New("no find history yet (use prog find <keyword> first)")
				}
				cands = []candidate{{Path: entry.Path, Label: entry.Repo, Kind: kindRepo}}
			}

			if all || (len(cands) > 1 && !interactive && !isInteractiveTerminal()) {
				for _, c := range cands {
					out.Println(c.Path)
				}
				return nil
			}

			chosen := cands[0]
			if len(cands) > 1 || interactive {
				opts := make([]prompt.Option, len(cands))
				for i, c := range cands {
					opts[i] = c.option()
				}
				res, err := prompt.Pick(title, opts)
				if err != nil {
					return err
				}
				if res.Cancelled {
					os.Exit(1)
				}
				chosen = cands[res.Index]
			}

			hist.RecordAccess(chosen.Path, chosen.Label, time.Now())
			if err := hist.Save(histPath); err != nil {
				l.Warn("failed to save history", "err", err)
			}

			out.Println(chosen.Path)
			if !query {
				copyPath(ctx, chosen.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&query, "query", "q", false, "Only print the path, do not copy it to the clipboard")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print every match in rank order")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Always pick interactively")
	cmd.MarkFlagsMutuallyExclusive("all", "interactive")

	return cmd
}

// resync silently rebuilds the index after find saw paths that vanished.
func resync(ctx context.Context, cfg *config.Config, db *database.Database) {
	l := log.FromContext(ctx)
	if len(cfg.Base) == 0 {
		return
	}
	l.Debug("index is stale, re-syncing")
	if _, err := scan.Sync(ctx, db, newWalker(cfg), cfg.Base, true); err != nil {
		l.Warn("re-sync failed", "err", err)
	}
}

func isInteractiveTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
}
