package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/git"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/scan"
)

// newReader returns the remote URL reader selected by remote_reader.
func newReader(cfg *config.Config) scan.RemoteReader {
	if cfg.RemoteReader == config.ReaderGoGit {
		return git.GoGitReader{}
	}
	return git.CLIReader{}
}

func newWalker(cfg *config.Config) *scan.Walker {
	return &scan.Walker{Reader: newReader(cfg), Workers: cfg.Workers}
}

// openDatabase loads the index and runs an auto-sync when one is due.
// Auto-sync failures are logged; the loaded index is still usable.
func openDatabase(ctx context.Context, cfg *config.Config, autoSync bool) *database.Database {
	db := database.Load(ctx, cfg.DataFile())
	if !autoSync {
		return db
	}
	if _, err := scan.AutoSync(ctx, db, newWalker(cfg), cfg); err != nil {
		log.FromContext(ctx).Warn("auto-sync failed", "err", err)
	}
	return db
}

// requireBase fails with a hint when no base directory is configured.
func requireBase(cfg *config.Config) error {
	if len(cfg.Base) == 0 {
		return fmt.Errorf("no base directory configured: set base in %s or PROG_BASE", config.Path())
	}
	return nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// copyPath puts path on the clipboard. Failure is only a warning since
// headless machines have no clipboard.
func copyPath(ctx context.Context, path string) {
	if err := clipboard.WriteAll(path); err != nil {
		log.FromContext(ctx).Debug("clipboard unavailable", "err", err)
		return
	}
	log.FromContext(ctx).Debug("copied to clipboard", "path", path)
}
