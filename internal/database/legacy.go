package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/log"
)

const legacyQuery = `SELECT created_at, updated_at, host, repo, owner, base_dir, remote_url, full_path
FROM repos ORDER BY full_path`

// ImportSQLite copies the repos table of an older SQLite index into d.
// Timestamps there are unix seconds. Rows without a path, host or owner
// are skipped with a warning.
func (d *Database) ImportSQLite(ctx context.Context, path string) (imported, skipped int, err error) {
	if _, err := os.Stat(path); err != nil {
		return 0, 0, err
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, legacyQuery)
	if err != nil {
		return 0, 0, fmt.Errorf("query repos: %w", err)
	}
	defer rows.Close()

	l := log.FromContext(ctx)
	for rows.Next() {
		var created, updated int64
		var rec index.Record
		if err := rows.Scan(&created, &updated, &rec.Host, &rec.Repo, &rec.Owner, &rec.BaseDir, &rec.RemoteURL, &rec.FullPath); err != nil {
			return imported, skipped, fmt.Errorf("scan repos row: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0).UTC()
		rec.UpdatedAt = time.Unix(updated, 0).UTC()

		if err := d.store.Insert(rec); err != nil {
			l.Warn("skipping legacy row", "err", err)
			skipped++
			continue
		}
		imported++
	}
	if err := rows.Err(); err != nil {
		return imported, skipped, fmt.Errorf("read repos: %w", err)
	}
	return imported, skipped, nil
}
