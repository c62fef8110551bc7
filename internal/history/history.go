// Package history remembers which repositories find resolved to, so that
// "prog find" without a keyword returns to the last one and the picker can
// list recently used repositories first.
package history

import (
	"cmp"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/raphi011/prog/internal/storage"
)

// FileName is the history file inside the data directory.
const FileName = "history.toml"

// MaxEntries bounds the file; the least recently used entries are dropped.
const MaxEntries = 200

// Entry is one visited repository.
type Entry struct {
	Path       string    `toml:"path"`
	Repo       string    `toml:"repo"`
	LastAccess time.Time `toml:"last_access"`
	Count      int       `toml:"count"`
}

// History is the list of visited repositories.
type History struct {
	Entries []Entry `toml:"entries"`
}

// Path returns the history file for dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads the history at path. A missing or corrupted file yields an
// empty history.
func Load(path string) (*History, error) {
	var h History
	err := storage.LoadTOML(path, &h)
	if errors.Is(err, os.ErrNotExist) {
		return &History{}, nil
	}
	if err != nil {
		var perr *os.PathError
		if errors.As(err, &perr) {
			return nil, err
		}
		// corrupted, start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Save writes the history atomically.
func (h *History) Save(path string) error {
	return storage.SaveTOML(path, h)
}

// RecordAccess marks path as visited at now.
func (h *History) RecordAccess(path, repo string, now time.Time) {
	for i := range h.Entries {
		if h.Entries[i].Path == path {
			h.Entries[i].Repo = repo
			h.Entries[i].LastAccess = now
			h.Entries[i].Count++
			return
		}
	}
	h.Entries = append(h.Entries, Entry{Path: path, Repo: repo, LastAccess: now, Count: 1})
	if len(h.Entries) > MaxEntries {
		h.SortByRecency()
		h.Entries = h.Entries[:MaxEntries]
	}
}

// SortByRecency orders entries most recent first.
func (h *History) SortByRecency() {
	slices.SortStableFunc(h.Entries, func(a, b Entry) int {
		return cmp.Or(b.LastAccess.Compare(a.LastAccess), cmp.Compare(a.Path, b.Path))
	})
}

// RemoveStale drops entries whose path no longer exists and returns how
// many were removed.
func (h *History) RemoveStale() int {
	before := len(h.Entries)
	h.Entries = slices.DeleteFunc(h.Entries, func(e Entry) bool {
		_, err := os.Stat(e.Path)
		return errors.Is(err, os.ErrNotExist)
	})
	return before - len(h.Entries)
}

// MostRecent returns the most recently visited entry.
func (h *History) MostRecent() (Entry, bool) {
	if len(h.Entries) == 0 {
		return Entry{}, false
	}
	best := h.Entries[0]
	for _, e := range h.Entries[1:] {
		if e.LastAccess.After(best.LastAccess) {
			best = e
		}
	}
	return best, true
}

// LastAccess returns when path was last visited.
func (h *History) LastAccess(path string) (time.Time, bool) {
	for _, e := range h.Entries {
		if e.Path == path {
			return e.LastAccess, true
		}
	}
	return time.Time{}, false
}
