package doctor

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/scan"
)

// Check compares db with a fresh walk of the configured base directories.
// db is not modified.
func Check(ctx context.Context, cfg *config.Config, db *database.Database, w *scan.Walker) (Report, error) {
	var r Report

	bases := checkBases(cfg, &r)

	fresh, stats, err := w.Rebuild(ctx, bases, db.Store())
	if err != nil {
		return Report{}, fmt.Errorf("walk base directories: %w", err)
	}

	checkRecords(db, cfg.Base, fresh, &r)
	checkOrphans(db, fresh, stats.Skipped, &r)
	return r, nil
}

// checkBases reports missing base directories and returns the ones that
// can be walked.
func checkBases(cfg *config.Config, r *Report) []string {
	if len(cfg.Base) == 0 {
		r.add(Issue{
			Path:        config.Path(),
			Description: "no base directory configured",
			Category:    CategoryConfig,
		})
		return nil
	}

	var bases []string
	for _, b := range cfg.Base {
		info, err := os.Stat(b)
		switch {
		case err != nil:
			r.add(Issue{Path: b, Description: "base directory does not exist", Category: CategoryConfig})
		case !info.IsDir():
			r.add(Issue{Path: b, Description: "base is not a directory", Category: CategoryConfig})
		default:
			bases = append(bases, b)
		}
	}
	return bases
}

func checkRecords(db *database.Database, bases []string, fresh *index.Store, r *Report) {
	for _, rec := range db.AllItems() {
		if !slices.Contains(bases, rec.BaseDir) {
			r.add(Issue{
				Path:        rec.FullPath,
				Description: fmt.Sprintf("base %s is no longer configured", rec.BaseDir),
				Fix:         FixRemove,
				Category:    CategoryIndex,
			})
			continue
		}
		if _, err := os.Stat(rec.FullPath); os.IsNotExist(err) {
			r.add(Issue{
				Path:        rec.FullPath,
				Description: "path no longer exists",
				Fix:         FixRemove,
				Category:    CategoryIndex,
			})
			continue
		}

		now, ok := fresh.Get(rec.FullPath)
		if !ok {
			r.add(Issue{
				Path:        rec.FullPath,
				Description: "no longer a repository sync can index",
				Fix:         FixRemove,
				Category:    CategoryIndex,
			})
			continue
		}
		if now.RemoteURL != rec.RemoteURL {
			r.add(Issue{
				Path:        rec.FullPath,
				Description: fmt.Sprintf("origin changed: %s -> %s", rec.RemoteURL, now.RemoteURL),
				Fix:         FixUpdate,
				Category:    CategoryIndex,
				Record:      now,
			})
			continue
		}
		r.Stats.Healthy++
	}
}

func checkOrphans(db *database.Database, fresh *index.Store, skipped []scan.Skip, r *Report) {
	for _, rec := range fresh.All() {
		if _, ok := db.Get(rec.FullPath); ok {
			continue
		}
		r.add(Issue{
			Path:        rec.FullPath,
			Description: "repository is not indexed",
			Fix:         FixAdd,
			Category:    CategoryOrphan,
			Record:      rec,
		})
	}
	for _, s := range skipped {
		r.add(Issue{
			Path:        s.Path,
			Description: s.Reason,
			Category:    CategoryOrphan,
		})
	}
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	switch {
	case issue.Category == CategoryConfig:
		r.Stats.Config++
	case issue.Fix == FixRemove:
		r.Stats.Stale++
	case issue.Fix == FixUpdate:
		r.Stats.Changed++
	case issue.Fix == FixAdd:
		r.Stats.Untracked++
	default:
		r.Stats.Unusable++
	}
}
