// Package database persists the repository index to data.toml and exposes
// the operations commands run against it.
//
// Loading never fails: a missing or empty file yields an empty index, and a
// corrupt file is moved aside (data.toml.corrupt) before starting fresh.
// Saves are atomic and serialised across processes with a lock file.
package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/match"
	"github.com/raphi011/prog/internal/remote"
	"github.com/raphi011/prog/internal/storage"
)

// Version is the data file format version.
const Version = "1.0"

type fileData struct {
	Version      string         `toml:"version"`
	LastSyncTime *time.Time     `toml:"last_sync_time,omitempty"`
	Records      []index.Record `toml:"records"`
}

// Database is the loaded index plus its sync metadata.
type Database struct {
	path     string
	store    *index.Store
	lastSync time.Time
	now      func() time.Time
}

// New returns an empty database that saves to path.
func New(path string) *Database {
	return &Database{path: path, store: index.New(), now: time.Now}
}

// Load reads the database at path.
func Load(ctx context.Context, path string) *Database {
	l := log.FromContext(ctx)
	db := New(path)

	var data fileData
	err := storage.LoadTOML(path, &data)
	switch {
	case errors.Is(err, os.ErrNotExist):
		l.Debug("no index file, starting empty", "path", path)
		return db
	case err != nil:
		l.Error("unreadable index, starting with an empty one", "path", path, "err", err)
		if mvErr := os.Rename(path, path+".corrupt"); mvErr != nil {
			l.Debug("could not move corrupt index aside", "err", mvErr)
		}
		return db
	}

	if data.Version != "" && data.Version != Version {
		l.Warn("index file version differs", "path", path, "version", data.Version, "want", Version)
	}
	for _, rec := range data.Records {
		if err := db.store.Insert(rec); err != nil {
			l.Warn("skipping invalid index record", "err", err)
		}
	}
	if data.LastSyncTime != nil {
		db.lastSync = *data.LastSyncTime
	}
	l.Debug("loaded index", "path", path, "records", db.store.Len())
	return db
}

// Save writes the database atomically while holding the lock file.
func (d *Database) Save(ctx context.Context) error {
	lock := storage.NewFileLock(d.path + ".lock")
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock index: %w", err)
	}
	defer lock.Unlock()

	data := fileData{Version: Version, Records: d.store.All()}
	if !d.lastSync.IsZero() {
		t := d.lastSync
		data.LastSyncTime = &t
	}
	if err := storage.SaveTOML(d.path, data); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	log.FromContext(ctx).Debug("saved index", "path", d.path, "records", len(data.Records))
	return nil
}

// Path returns the data file location.
func (d *Database) Path() string { return d.path }

// Store returns the underlying index.
func (d *Database) Store() *index.Store { return d.store }

// Replace swaps in a freshly built index.
func (d *Database) Replace(s *index.Store) { d.store = s }

// RecordItem indexes the repository at fullPath, which was cloned from
// remoteURL into baseDir.
func (d *Database) RecordItem(baseDir, remoteURL string, u remote.URL, fullPath string) error {
	now := d.now()
	return d.store.Insert(index.Record{
		Host:      u.Host,
		Owner:     u.Owner,
		Repo:      u.Name,
		RemoteURL: remoteURL,
		BaseDir:   baseDir,
		FullPath:  fullPath,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Find ranks the indexed repositories against keyword.
func (d *Database) Find(keyword string) []match.Result {
	return match.Find(d.store, keyword)
}

// Get returns the record at path.
func (d *Database) Get(path string) (index.Record, bool) { return d.store.Get(path) }

// Remove drops the record at path and reports whether it existed.
func (d *Database) Remove(path string) bool { return d.store.Remove(path) }

// AllItems returns every record sorted by path.
func (d *Database) AllItems() []index.Record { return d.store.All() }

// Len returns the number of indexed repositories.
func (d *Database) Len() int { return d.store.Len() }

// Reset clears the index and forgets the last sync.
func (d *Database) Reset() {
	d.store.Reset()
	d.lastSync = time.Time{}
}

// LastSyncTime returns when the index was last rebuilt.
func (d *Database) LastSyncTime() (time.Time, bool) {
	return d.lastSync, !d.lastSync.IsZero()
}

// UpdateLastSyncTime records that a sync finished now.
func (d *Database) UpdateLastSyncTime() {
	d.lastSync = d.now()
}

// SyncDue reports whether an auto-sync should run. A non-positive interval
// disables auto-sync; a database that was never synced is always due.
func (d *Database) SyncDue(interval time.Duration) bool {
	if interval <= 0 {
		return false
	}
	last, ok := d.LastSyncTime()
	if !ok {
		return true
	}
	return d.now().Sub(last) > interval
}
