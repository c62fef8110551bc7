package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/prog/internal/format"
	"github.com/raphi011/prog/internal/git"
	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/remote"
)

// ErrWalkAborted is returned when a walk stops before visiting everything.
var ErrWalkAborted = errors.New("sync walk aborted")

// RemoteReader reads the origin URL of a working directory. An empty URL
// with a nil error means the directory has no origin.
type RemoteReader interface {
	RemoteURL(ctx context.Context, dir string) (string, error)
}

// Skip is a directory the walk could not index.
type Skip struct {
	Path   string
	Reason string
}

// Stats summarizes a rebuild.
type Stats struct {
	Found   int
	Skipped []Skip
	Elapsed time.Duration
}

// Found is a working directory with a usable remote.
type Found struct {
	BaseDir   string
	Path      string
	RemoteURL string
	URL       remote.URL
}

// Result is one message on the walk channel: either a Found or a Skip.
type Result struct {
	Found *Found
	Skip  *Skip
}

// Walker walks base directories with a bounded pool of goroutines.
type Walker struct {
	Reader  RemoteReader
	Workers int

	// Progress, when set, is called from the consumer goroutine after each
	// indexed repository with the running count.
	Progress func(found int)
}

func (w *Walker) workers() int {
	return max(w.Workers, 1)
}

// Walk visits every base directory concurrently and sends a Result for
// each working directory it finds. out is never closed by Walk.
func (w *Walker) Walk(ctx context.Context, baseDirs []string, out chan<- Result) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers())

	wk := &walk{
		ctx:    gctx,
		g:      g,
		out:    out,
		reader: w.Reader,
		log:    log.FromContext(ctx),
	}
	for _, base := range baseDirs {
		if err := wk.spawn(func() error { return wk.visit(base, base, 0) }); err != nil {
			_ = g.Wait()
			return err
		}
	}
	return g.Wait()
}

// Rebuild walks baseDirs into a fresh index. created_at is carried over
// from prior for paths that are still present. On error the returned
// index is nil and prior should stay in use.
func (w *Walker) Rebuild(ctx context.Context, baseDirs []string, prior *index.Store) (*index.Store, Stats, error) {
	start := time.Now()
	l := log.FromContext(ctx)
	store := index.New()
	results := make(chan Result, 64)

	var stats Stats
	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		for r := range results {
			if r.Skip != nil {
				stats.Skipped = append(stats.Skipped, *r.Skip)
				continue
			}
			rec := newRecord(r.Found, start)
			if prior != nil {
				if old, ok := prior.Get(rec.FullPath); ok {
					rec.CreatedAt = old.CreatedAt
				}
			}
			if err := store.Insert(rec); err != nil {
				l.Warn("skipping repository", "path", rec.FullPath, "reason", err)
				stats.Skipped = append(stats.Skipped, Skip{Path: rec.FullPath, Reason: err.Error()})
				continue
			}
			stats.Found++
			if w.Progress != nil {
				w.Progress(stats.Found)
			}
		}
	}()

	err := w.Walk(ctx, baseDirs, results)
	close(results)
	<-consumed

	stats.Elapsed = time.Since(start)
	if err != nil {
		return nil, stats, err
	}
	return store, stats, nil
}

func newRecord(f *Found, now time.Time) index.Record {
	return index.Record{
		Host:      f.URL.Host,
		Owner:     f.URL.Owner,
		Repo:      f.URL.Name,
		RemoteURL: f.RemoteURL,
		BaseDir:   f.BaseDir,
		FullPath:  f.Path,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type walk struct {
	ctx    context.Context
	g      *errgroup.Group
	out    chan<- Result
	reader RemoteReader
	log    *log.Logger
}

// spawn runs f on a free worker, or inline when the pool is saturated so
// a worker never blocks waiting for another.
func (wk *walk) spawn(f func() error) error {
	if wk.g.TryGo(f) {
		return nil
	}
	return f()
}

func (wk *walk) visit(base, dir string, depth int) error {
	if err := wk.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrWalkAborted, err)
	}
	if git.IsGitRepo(dir) {
		return wk.index(base, dir)
	}
	if depth >= format.MaxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return wk.skip(dir, fmt.Sprintf("unreadable directory: %v", err))
	}
	for _, e := range entries {
		// DirEntry types come from lstat, so symlinked directories are
		// not IsDir and never followed.
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		child := filepath.Join(dir, e.Name())
		if err := wk.spawn(func() error { return wk.visit(base, child, depth+1) }); err != nil {
			return err
		}
	}
	return nil
}

func (wk *walk) index(base, dir string) error {
	raw, err := wk.reader.RemoteURL(wk.ctx, dir)
	if err != nil {
		if wk.ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrWalkAborted, wk.ctx.Err())
		}
		return wk.skip(dir, fmt.Sprintf("read remote: %v", err))
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return wk.skip(dir, "no origin remote")
	}
	u, ok := remote.Parse(raw)
	if !ok || !u.Complete() {
		return wk.skip(dir, fmt.Sprintf("unparsable remote url %q", raw))
	}

	wk.log.Debug("found repository", "path", dir, "remote", raw)
	return wk.emit(Result{Found: &Found{BaseDir: base, Path: dir, RemoteURL: raw, URL: u}})
}

func (wk *walk) skip(dir, reason string) error {
	wk.log.Warn("skipping", "path", dir, "reason", reason)
	return wk.emit(Result{Skip: &Skip{Path: dir, Reason: reason}})
}

func (wk *walk) emit(r Result) error {
	select {
	case wk.out <- r:
		return nil
	case <-wk.ctx.Done():
		return fmt.Errorf("%w: %w", ErrWalkAborted, wk.ctx.Err())
	}
}
