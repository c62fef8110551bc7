package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/doctor"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair the index",
		GroupID: GroupIndex,
		Args:    cobra.NoArgs,
		Long: `Compare the index with the repositories on disk.

Reports missing base directories, records whose path vanished or whose
origin changed, and repositories that are not indexed yet. With --fix the
index is updated in place; unlike sync, records that are still valid keep
their update time.`,
		Example: `  prog doctor         # Check only
  prog doctor --fix   # Check and repair`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			db := database.Load(ctx, cfg.DataFile())
			return doctor.Run(ctx, cfg, db, newWalker(cfg), fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair the issues that can be fixed automatically")

	return cmd
}
