package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/output"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "migrate <sqlite-db>",
		Short:   "Import a legacy SQLite index",
		GroupID: GroupIndex,
		Args:    cobra.ExactArgs(1),
		Long: `Import the records of a legacy SQLite index (the repos table) into
the current index. Existing records with the same path are replaced.

Rows that fail validation are skipped with a warning.`,
		Example: `  prog migrate ~/.local/share/prog/data.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			db := database.Load(ctx, cfg.DataFile())
			imported, skipped, err := db.ImportSQLite(ctx, args[0])
			if err != nil {
				return err
			}
			if err := db.Save(ctx); err != nil {
				return fmt.Errorf("save index: %w", err)
			}

			out.Printf("Imported %d repositories", imported)
			if skipped > 0 {
				out.Printf(", skipped %d", skipped)
			}
			out.Println()
			return nil
		},
	}

	return cmd
}
