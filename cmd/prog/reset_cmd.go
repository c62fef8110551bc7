package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/output"
	"github.com/raphi011/prog/internal/ui/prompt"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "reset",
		Short:   "Clear the index",
		Aliases: []string{"clean"},
		GroupID: GroupIndex,
		Args:    cobra.NoArgs,
		Long: `Drop every record and the last sync time. No files are touched.

The next command that needs the index syncs it again.`,
		Example: `  prog reset       # asks first
  prog reset -y    # no confirmation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			db := database.Load(ctx, cfg.DataFile())
			if !yes {
				result, err := prompt.Confirm(fmt.Sprintf("Clear all %d indexed repositories?", db.Len()))
				if err != nil {
					return err
				}
				if result.Cancelled || !result.Confirmed {
					log.FromContext(ctx).Println("Cancelled")
					return nil
				}
			}

			n := db.Len()
			db.Reset()
			if err := db.Save(ctx); err != nil {
				return fmt.Errorf("save index: %w", err)
			}
			out.Printf("Cleared %d repositories\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
