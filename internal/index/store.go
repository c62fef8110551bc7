// Package index holds the in-memory repository index.
//
// The primary index is an ordered map from full path to Record, giving
// sorted iteration and prefix range scans. Three secondary indexes map
// host, owner and repo name to the set of paths carrying that value.
// Every Insert and Remove keeps the secondaries consistent with the primary.
//
// A Store is not safe for concurrent mutation. The sync walker funnels all
// inserts through a single consumer goroutine.
package index

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	rbt "github.com/emirpasic/gods/trees/redblacktree"
)

// ErrInvalidRecord is returned when inserting a record without a path,
// host or owner.
var ErrInvalidRecord = errors.New("invalid record")

// Store is the indexed repository store.
type Store struct {
	byPath  *rbt.Tree // string -> Record
	byHost  *rbt.Tree // string -> *treeset.Set of paths
	byOwner *rbt.Tree
	byRepo  *rbt.Tree
}

// New returns an empty store.
func New() *Store {
	return &Store{
		byPath:  rbt.NewWithStringComparator(),
		byHost:  rbt.NewWithStringComparator(),
		byOwner: rbt.NewWithStringComparator(),
		byRepo:  rbt.NewWithStringComparator(),
	}
}

// Insert upserts rec keyed by rec.FullPath.
//
// An existing record's CreatedAt is carried over. A zero CreatedAt defaults
// to UpdatedAt, and CreatedAt never ends up after UpdatedAt.
func (s *Store) Insert(rec Record) error {
	switch {
	case rec.FullPath == "":
		return fmt.Errorf("%w: empty path", ErrInvalidRecord)
	case strings.TrimSpace(rec.Host) == "":
		return fmt.Errorf("%w: empty host for %s", ErrInvalidRecord, rec.FullPath)
	case strings.TrimSpace(rec.Owner) == "":
		return fmt.Errorf("%w: empty owner for %s", ErrInvalidRecord, rec.FullPath)
	}

	if old, ok := s.Get(rec.FullPath); ok {
		if !old.CreatedAt.IsZero() {
			rec.CreatedAt = old.CreatedAt
		}
		s.retract(old)
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	if rec.CreatedAt.IsZero() || rec.CreatedAt.After(rec.UpdatedAt) {
		rec.CreatedAt = rec.UpdatedAt
	}

	s.byPath.Put(rec.FullPath, rec)
	addKey(s.byHost, rec.Host, rec.FullPath)
	addKey(s.byOwner, rec.Owner, rec.FullPath)
	addKey(s.byRepo, rec.Repo, rec.FullPath)
	return nil
}

// Remove deletes the record at path and reports whether one existed.
func (s *Store) Remove(path string) bool {
	old, ok := s.Get(path)
	if !ok {
		return false
	}
	s.retract(old)
	s.byPath.Remove(path)
	return true
}

// Get returns the record at path.
func (s *Store) Get(path string) (Record, bool) {
	v, ok := s.byPath.Get(path)
	if !ok {
		return Record{}, false
	}
	return v.(Record), true
}

// GetByPrefix returns every record whose path starts with prefix, in path
// order. The scan starts at the first key >= prefix and stops at the first
// key that no longer matches.
func (s *Store) GetByPrefix(prefix string) []Record {
	node, ok := s.byPath.Ceiling(prefix)
	if !ok {
		return nil
	}
	var out []Record
	it := s.byPath.IteratorAt(node)
	for {
		if !strings.HasPrefix(it.Key().(string), prefix) {
			break
		}
		out = append(out, it.Value().(Record))
		if !it.Next() {
			break
		}
	}
	return out
}

// GetByHost returns the records whose host equals host, in path order.
func (s *Store) GetByHost(host string) []Record { return s.lookup(s.byHost, host) }

// GetByOwner returns the records whose owner equals owner, in path order.
func (s *Store) GetByOwner(owner string) []Record { return s.lookup(s.byOwner, owner) }

// GetByRepo returns the records whose repo name equals repo, in path order.
func (s *Store) GetByRepo(repo string) []Record { return s.lookup(s.byRepo, repo) }

// All returns every record in path order.
func (s *Store) All() []Record {
	out := make([]Record, 0, s.byPath.Size())
	for it := s.byPath.Iterator(); it.Next(); {
		out = append(out, it.Value().(Record))
	}
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return s.byPath.Size()
}

// Reset drops every record and index entry.
func (s *Store) Reset() {
	s.byPath.Clear()
	s.byHost.Clear()
	s.byOwner.Clear()
	s.byRepo.Clear()
}

// Hosts returns the distinct hosts in sorted order.
func (s *Store) Hosts() []string { return keys(s.byHost) }

// Owners returns the distinct owners in sorted order.
func (s *Store) Owners() []string { return keys(s.byOwner) }

// RepoNames returns the distinct repo names in sorted order.
func (s *Store) RepoNames() []string { return keys(s.byRepo) }

func (s *Store) retract(rec Record) {
	removeKey(s.byHost, rec.Host, rec.FullPath)
	removeKey(s.byOwner, rec.Owner, rec.FullPath)
	removeKey(s.byRepo, rec.Repo, rec.FullPath)
}

func (s *Store) lookup(idx *rbt.Tree, key string) []Record {
	v, ok := idx.Get(key)
	if !ok {
		return nil
	}
	paths := v.(*treeset.Set)
	out := make([]Record, 0, paths.Size())
	for it := paths.Iterator(); it.Next(); {
		if rec, ok := s.Get(it.Value().(string)); ok {
			out = append(out, rec)
		}
	}
	return out
}

func addKey(idx *rbt.Tree, key, path string) {
	if v, ok := idx.Get(key); ok {
		v.(*treeset.Set).Add(path)
		return
	}
	idx.Put(key, treeset.NewWithStringComparator(path))
}

func removeKey(idx *rbt.Tree, key, path string) {
	v, ok := idx.Get(key)
	if !ok {
		return
	}
	paths := v.(*treeset.Set)
	paths.Remove(path)
	if paths.Empty() {
		idx.Remove(key)
	}
}

func keys(idx *rbt.Tree) []string {
	out := make([]string, 0, idx.Size())
	for it := idx.Iterator(); it.Next(); {
		out = append(out, it.Key().(string))
	}
	return out
}
