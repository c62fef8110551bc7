package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/output"
	"github.com/raphi011/prog/internal/ui/prompt"
)

func newRemoveCmd() *cobra.Command {
	var (
		yes         bool
		deleteFiles bool
	)

	cmd := &cobra.Command{
		Use:               "remove <path>",
		Short:             "Remove a repository from the index",
		Aliases:           []string{"rm"},
		GroupID:           GroupIndex,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeIndexedPaths,
		Long: `Remove a repository from the index.

Files are kept on disk unless --delete is given. A later sync re-indexes a
repository whose files are still there.`,
		Example: `  prog remove ~/src/github.com/owner/repo       # forget, keep files
  prog remove ~/src/github.com/owner/repo -D    # forget and delete files
  prog remove . -y                              # no confirmation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			db := database.Load(ctx, cfg.DataFile())
			rec, ok := db.Get(path)
			if !ok {
				return fmt.Errorf("not in index: %s", path)
			}

			if !yes {
				question := fmt.Sprintf("Remove %s from the index?", rec.FullName())
				if deleteFiles {
					question = fmt.Sprintf("Remove %s and delete %s from disk?", rec.FullName(), rec.FullPath)
				}
				result, err := prompt.Confirm(question)
				if err != nil {
					return err
				}
				if result.Cancelled || !result.Confirmed {
					l.Println("Cancelled")
					return nil
				}
			}

			db.Remove(path)
			if err := db.Save(ctx); err != nil {
				return fmt.Errorf("save index: %w", err)
			}
			l.Debug("removed from index", "path", path)

			if deleteFiles {
				if err := os.RemoveAll(rec.FullPath); err != nil {
					return fmt.Errorf("delete %s: %w", rec.FullPath, err)
				}
			}

			out.Printf("Removed %s\n", rec.FullPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVarP(&deleteFiles, "delete", "D", false, "Also delete the files from disk")

	return cmd
}
