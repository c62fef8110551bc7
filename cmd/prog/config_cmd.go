package main

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage prog configuration.

Config file: ~/.config/prog/config.toml (or PROG_CONFIG)`,
		Example: `  prog config init      # Create default config
  prog config show      # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  prog config init      # Create config
  prog config init -f   # Overwrite existing config
  prog config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}
			path, err := config.Init(force)
			if err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.MarkFlagsMutuallyExclusive("force", "stdout")

	return cmd
}

type themeJSON struct {
	Name     string `json:"name"`
	Mode     string `json:"mode"`
	Nerdfont bool   `json:"nerdfont"`
}

type configJSON struct {
	Path                 string            `json:"path"`
	Base                 []string          `json:"base"`
	CloneFormat          string            `json:"clone_format"`
	AutoSyncIntervalSecs int64             `json:"auto_sync_interval_secs"`
	DataDir              string            `json:"data_dir"`
	RemoteReader         string            `json:"remote_reader"`
	Workers              int               `json:"workers"`
	Theme                themeJSON         `json:"theme"`
	Alias                map[string]string `json:"alias,omitempty"`
}

func newConfigShowCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the configuration after defaults, environment overrides
(PROG_BASE, PROG_DATA_DIR, PROG_AUTO_SYNC_INTERVAL, PROG_REMOTE_READER) and
path expansion.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOut {
				base := cfg.Base
				if base == nil {
					base = []string{}
				}
				return out.JSON(configJSON{
					Path:                 config.Path(),
					Base:                 base,
					CloneFormat:          cfg.CloneFormat,
					AutoSyncIntervalSecs: cfg.AutoSyncIntervalSecs,
					DataDir:              cfg.DataDir,
					RemoteReader:         cfg.RemoteReader,
					Workers:              cfg.Workers,
					Theme: themeJSON{
						Name:     cfg.Theme.Name,
						Mode:     cfg.Theme.Mode,
						Nerdfont: cfg.Theme.Nerdfont,
					},
					Alias: cfg.Alias,
				})
			}

			out.Printf("# %s\n\n", config.Path())
			out.Printf("base = [")
			for i, b := range cfg.Base {
				if i > 0 {
					out.Printf(", ")
				}
				out.Printf("%q", b)
			}
			out.Printf("]\n")
			out.Printf("clone_format = %q\n", cfg.CloneFormat)
			out.Printf("auto_sync_interval_secs = %d\n", cfg.AutoSyncIntervalSecs)
			out.Printf("data_dir = %q\n", cfg.DataDir)
			out.Printf("remote_reader = %q\n", cfg.RemoteReader)
			out.Printf("workers = %d\n", cfg.Workers)

			out.Printf("\n[theme]\n")
			if cfg.Theme.Name != "" {
				out.Printf("name = %q\n", cfg.Theme.Name)
			}
			if cfg.Theme.Mode != "" {
				out.Printf("mode = %q\n", cfg.Theme.Mode)
			}
			out.Printf("nerdfont = %t\n", cfg.Theme.Nerdfont)

			if len(cfg.Alias) > 0 {
				out.Printf("\n[alias]\n")
				for _, k := range slices.Sorted(maps.Keys(cfg.Alias)) {
					out.Printf("%q = %q\n", k, cfg.Alias[k])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
