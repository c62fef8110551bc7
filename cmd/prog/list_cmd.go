package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/output"
	"github.com/raphi011/prog/internal/ui/static"
)

// listFilter narrows the listed records. Every non-empty field must match.
type listFilter struct {
	host   string
	owner  string
	repo   string
	prefix string
}

// apply picks the narrowest index for the first set field and filters the
// rest in memory.
func (f listFilter) apply(s *index.Store) []index.Record {
	var recs []index.Record
	switch {
	case f.repo != "":
		recs = s.GetByRepo(f.repo)
	case f.owner != "":
		recs = s.GetByOwner(f.owner)
	case f.host != "":
		recs = s.GetByHost(f.host)
	case f.prefix != "":
		recs = s.GetByPrefix(f.prefix)
	default:
		return s.All()
	}

	out := recs[:0]
	for _, r := range recs {
		if f.host != "" && r.Host != f.host {
			continue
		}
		if f.owner != "" && r.Owner != f.owner {
			continue
		}
		if f.prefix != "" && !strings.HasPrefix(r.FullPath, f.prefix) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func newListCmd() *cobra.Command {
	var (
		filter   listFilter
		jsonOut  bool
		tableOut bool
		noSync   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List indexed repositories",
		Aliases: []string{"ls"},
		GroupID: GroupIndex,
		Args:    cobra.NoArgs,
		Long: `List indexed repositories ordered by path.

By default one path is printed per line. Use --table for a table with the
last update time, or --json for machine-readable output.`,
		Example: `  prog list                       # every path
  prog list --owner raphi011      # one owner
  prog list --host gitlab.com -t  # table for one host
  prog list --json | jq '.[].remote_url'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			var db *database.Database
			if noSync {
				db = database.Load(ctx, cfg.DataFile())
			} else {
				db = openDatabase(ctx, cfg, true)
			}
			recs := filter.apply(db.Store())

			switch {
			case jsonOut:
				if recs == nil {
					recs = []index.Record{}
				}
				return out.JSON(recs)
			case tableOut:
				now := time.Now()
				rows := make([][]string, 0, len(recs))
				for _, r := range recs {
					rows = append(rows, static.RecordTableRow(r, now, pathExists(r.FullPath)))
				}
				out.Print(static.RenderTable(static.RecordHeaders, rows))
			default:
				for _, r := range recs {
					out.Println(r.FullPath)
				}
			}

			if db.Len() == 0 && !jsonOut {
				log.FromContext(ctx).Printf("Index is empty. Run 'prog sync' after setting base in %s\n", config.Path())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.host, "host", "", "Only repositories on this host")
	cmd.Flags().StringVar(&filter.owner, "owner", "", "Only repositories of this owner")
	cmd.Flags().StringVar(&filter.repo, "repo", "", "Only repositories with this name")
	cmd.Flags().StringVar(&filter.prefix, "prefix", "", "Only paths below this directory")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&tableOut, "table", "t", false, "Output as a table")
	cmd.Flags().BoolVar(&noSync, "no-sync", false, "Skip the auto-sync")
	cmd.MarkFlagsMutuallyExclusive("json", "table")

	cmd.RegisterFlagCompletionFunc("host", completeIndexKeys(func(s *index.Store) []string { return s.Hosts() }))
	cmd.RegisterFlagCompletionFunc("owner", completeIndexKeys(func(s *index.Store) []string { return s.Owners() }))
	cmd.RegisterFlagCompletionFunc("repo", completeIndexKeys(func(s *index.Store) []string { return s.RepoNames() }))

	return cmd
}
