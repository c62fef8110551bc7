// Package match ranks indexed repositories against a search keyword.
//
// Each record gets at most one Kind, the best one that applies. Results are
// ordered by kind, then by edit distance between repo name and keyword,
// then by repo name and finally by path, which makes the order total.
package match

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/remote"
)

// Result is a matched record.
type Result struct {
	index.Record
	Kind     Kind
	Distance int
}

// Normalize turns a keyword that is itself a valid remote URL into its
// "owner/name" form. Anything else is returned unchanged.
func Normalize(keyword string) string {
	if u, ok := remote.Parse(keyword); ok && u.Valid() {
		return u.FullName
	}
	return keyword
}

// Find returns the records of s matching keyword, best first.
// An empty keyword matches nothing.
func Find(s *index.Store, keyword string) []Result {
	kw := strings.ToLower(Normalize(keyword))
	if strings.TrimSpace(kw) == "" {
		return nil
	}
	kwSegs := segments(kw)

	var out []Result
	for _, rec := range s.All() {
		kind, ok := classify(rec, kw, kwSegs)
		if !ok {
			continue
		}
		out = append(out, Result{
			Record:   rec,
			Kind:     kind,
			Distance: levenshtein.ComputeDistance(strings.ToLower(rec.Repo), kw),
		})
	}

	slices.SortFunc(out, compare)
	return out
}

func compare(a, b Result) int {
	return cmp.Or(
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Distance, b.Distance),
		cmp.Compare(strings.ToLower(a.Repo), strings.ToLower(b.Repo)),
		cmp.Compare(a.FullPath, b.FullPath),
	)
}

func classify(rec index.Record, kw string, kwSegs []string) (Kind, bool) {
	repo := strings.ToLower(rec.Repo)
	owner := strings.ToLower(rec.Owner)

	switch {
	case repo == kw:
		return ExactRepo, true
	case owner+"/"+repo == kw:
		return ExactFullName, true
	case strings.Contains(repo, kw):
		return RepoSubstring, true
	case strings.Contains(strings.ToLower(rec.FullPath), kw):
		return PathSubstring, true
	case owner == kw:
		return ExactOwner, true
	case strings.Contains(owner, kw):
		return OwnerSubstring, true
	case strings.Contains(strings.ToLower(rec.RemoteURL), kw):
		return RemoteSubstring, true
	case segmentsMatch(kwSegs, segments(repo)):
		return FuzzySegment, true
	}
	return 0, false
}

// SegmentMatch reports whether every segment of keyword appears, in order,
// among the segments of target. Segments are split on '-', '_' and '.'.
// "abcd-jkl" matches "abcd-efg-jkl" but not "jkl-abcd" or "abc-jkl".
func SegmentMatch(keyword, target string) bool {
	return segmentsMatch(segments(strings.ToLower(keyword)), segments(strings.ToLower(target)))
}

func segmentsMatch(kw, target []string) bool {
	if len(kw) == 0 {
		return false
	}
	i := 0
	for _, seg := range target {
		if seg == kw[i] {
			i++
			if i == len(kw) {
				return true
			}
		}
	}
	return false
}

func segments(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
}

// Suggest returns up to n names that fuzzily resemble keyword, best first.
// It is used for "did you mean" hints when Find has no results.
func Suggest(names []string, keyword string, n int) []string {
	matches := fuzzy.Find(keyword, names)
	out := make([]string, 0, min(n, len(matches)))
	for _, m := range matches {
		if len(out) == n {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
