package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/git"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/output"
	"github.com/raphi011/prog/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupIndex  = "index"
	GroupConfig = "config"
)

// commands that work without git on PATH
var skipGitCheck = map[string]bool{
	"completion": true,
	"__complete": true,
	"help":       true,
	"init":       true,
	"config":     true,
	"show":       true,
	"migrate":    true,
	"remove":     true,
	"reset":      true,
}

var rootCmd = &cobra.Command{
	Use:   "prog",
	Short: "Find your local git repositories by name",
	Long: `prog keeps a searchable index of the git repositories below your base
directories and resolves a keyword to the path of a repository.

Repositories are laid out as <base>/<host>/<owner>/<repo>. "prog sync"
rebuilds the index; it also re-syncs automatically when the index is empty
or older than auto_sync_interval_secs.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// the logger depends on parsed flags, so it is attached here
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)

		if cfg := config.FromContext(ctx); cfg != nil {
			styles.Init(cfg.Theme)
		}
		if skipGitCheck[cmd.Name()] {
			return nil
		}
		return git.CheckGit()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg := &loadedCfg

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, cfg)
	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, false))
	ctx = output.WithPrinter(ctx, os.Stdout)
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'prog -h' for help")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands and debug output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress all log output except errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupIndex, Title: "Index Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newListCmd())

	// Index commands
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newDoctorCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
