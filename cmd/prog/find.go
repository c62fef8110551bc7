package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/format"
	"github.com/raphi011/prog/internal/history"
	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/match"
	"github.com/raphi011/prog/internal/ui/prompt"
	"github.com/raphi011/prog/internal/ui/styles"
)

// candidate kinds
const (
	kindRepo  = "repo"
	kindHost  = "host"
	kindOwner = "owner"
)

// candidate is a path find may print.
type candidate struct {
	Path  string
	Label string
	Kind  string
}

func repoCandidate(rec index.Record) candidate {
	return candidate{Path: rec.FullPath, Label: rec.FullName(), Kind: kindRepo}
}

func (c candidate) option() prompt.Option {
	sym := styles.CurrentSymbols()
	symbol := sym.Repo
	switch c.Kind {
	case kindHost:
		symbol = sym.Host
	case kindOwner:
		symbol = sym.Owner
	}
	return prompt.Option{Symbol: symbol, Label: c.Label, Description: c.Path}
}

// findCandidates ranks the index against keyword and keeps the paths that
// still exist, in rank order and without duplicates. When keyword names a
// record's host or owner exactly, that directory is offered as well.
// stale reports whether a ranked path was missing, meaning the index is
// out of date.
func findCandidates(db *database.Database, keyword string, exists func(string) bool) (cands []candidate, stale bool) {
	seen := make(map[string]bool)
	add := func(c candidate) {
		if seen[c.Path] || !exists(c.Path) {
			return
		}
		seen[c.Path] = true
		cands = append(cands, c)
	}

	for _, r := range db.Find(keyword) {
		if !exists(r.FullPath) {
			stale = true
			continue
		}
		add(repoCandidate(r.Record))
		if strings.EqualFold(r.Host, keyword) {
			if dir, ok := format.HostDir(r.Record); ok {
				add(candidate{Path: dir, Label: r.Host, Kind: kindHost})
			}
		}
		if strings.EqualFold(r.Owner, keyword) {
			if dir, ok := format.OwnerDir(r.Record); ok {
				add(candidate{Path: dir, Label: r.Host + "/" + r.Owner, Kind: kindOwner})
			}
		}
	}
	return cands, stale
}

// recentCandidates lists every existing record, visited ones first (most
// recent first), the rest by path.
func recentCandidates(db *database.Database, hist *history.History, exists func(string) bool) []candidate {
	recs := slices.DeleteFunc(db.AllItems(), func(r index.Record) bool { return !exists(r.FullPath) })
	slices.SortStableFunc(recs, func(a, b index.Record) int {
		ta, okA := hist.LastAccess(a.FullPath)
		tb, okB := hist.LastAccess(b.FullPath)
		switch {
		case okA && okB:
			return cmp.Or(tb.Compare(ta), cmp.Compare(a.FullPath, b.FullPath))
		case okA:
			return -1
		case okB:
			return 1
		}
		return cmp.Compare(a.FullPath, b.FullPath)
	})

	cands := make([]candidate, len(recs))
	for i, r := range recs {
		cands[i] = repoCandidate(r)
	}
	return cands
}

// noMatchError reports a keyword without results, with suggestions drawn
// from the indexed repository names.
func noMatchError(db *database.Database, keyword string) error {
	similar := match.Suggest(db.Store().RepoNames(), keyword, 3)
	if len(similar) == 0 {
		return fmt.Errorf("no repository matches %q", keyword)
	}
	return fmt.Errorf("no repository matches %q\nDid you mean: %s", keyword, strings.Join(similar, ", "))
}
