package scan

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/ui/progress"
)

// Sync rebuilds db from baseDirs, records the sync time and saves. A
// spinner is shown on stderr unless silent or stderr is not a terminal.
// If the walk is aborted db keeps its previous contents.
func Sync(ctx context.Context, db *database.Database, w *Walker, baseDirs []string, silent bool) (Stats, error) {
	l := log.FromContext(ctx)
	walker := *w

	if !silent && isatty.IsTerminal(os.Stderr.Fd()) {
		sp := progress.NewSpinner("Syncing repositories...")
		walker.Progress = func(n int) {
			sp.UpdateMessage(fmt.Sprintf("Syncing repositories... %d found", n))
		}
		sp.Start()
		defer sp.Stop()
	}

	store, stats, err := walker.Rebuild(ctx, baseDirs, db.Store())
	if err != nil {
		return stats, err
	}

	db.Replace(store)
	db.UpdateLastSyncTime()
	if err := db.Save(ctx); err != nil {
		return stats, err
	}
	l.Debug("sync finished", "found", stats.Found, "skipped", len(stats.Skipped), "elapsed", stats.Elapsed)
	return stats, nil
}

// AutoSync runs a silent Sync when the index is empty or the configured
// interval has passed since the last one. It reports whether it synced.
func AutoSync(ctx context.Context, db *database.Database, w *Walker, cfg *config.Config) (bool, error) {
	if len(cfg.Base) == 0 {
		return false, nil
	}
	if db.Len() > 0 && !db.SyncDue(cfg.AutoSyncInterval()) {
		return false, nil
	}

	log.FromContext(ctx).Debug("auto-sync due", "records", db.Len(), "interval", cfg.AutoSyncInterval())
	if _, err := Sync(ctx, db, w, cfg.Base, true); err != nil {
		return false, fmt.Errorf("auto-sync: %w", err)
	}
	return true, nil
}
