package doctor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/output"
	"github.com/raphi011/prog/internal/remote"
	"github.com/raphi011/prog/internal/scan"
)

type mapReader map[string]string

func (m mapReader) RemoteURL(_ context.Context, dir string) (string, error) {
	return m[dir], nil
}

func mkRepo(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func record(t *testing.T, db *database.Database, base, url, path string) {
	t.Helper()
	u, ok := remote.Parse(url)
	if !ok {
		t.Fatalf("remote.Parse(%q) failed", url)
	}
	if err := db.RecordItem(base, url, u, path); err != nil {
		t.Fatal(err)
	}
}

type fixture struct {
	cfg     *config.Config
	db      *database.Database
	walker  *scan.Walker
	healthy string
	changed string
	stale   string
	oldBase string
	orphan  string
	noURL   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	base := t.TempDir()
	dir := func(name string) string { return filepath.Join(base, "github.com", "acme", name) }

	f := fixture{
		healthy: mkRepo(t, dir("healthy")),
		changed: mkRepo(t, dir("changed")),
		stale:   dir("stale"),
		oldBase: "/old/github.com/acme/moved",
		orphan:  mkRepo(t, dir("orphan")),
		noURL:   mkRepo(t, dir("no-url")),
	}
	f.cfg = &config.Config{Base: []string{base, filepath.Join(base, "missing")}}
	f.walker = &scan.Walker{Workers: 2, Reader: mapReader{
		f.healthy: "https://github.com/acme/healthy",
		f.changed: "https://github.com/acme/renamed",
		f.orphan:  "https://github.com/acme/orphan",
	}}

	f.db = database.New(filepath.Join(t.TempDir(), "data.toml"))
	record(t, f.db, base, "https://github.com/acme/healthy", f.healthy)
	record(t, f.db, base, "https://github.com/acme/changed", f.changed)
	record(t, f.db, base, "https://github.com/acme/stale", f.stale)
	record(t, f.db, "/old", "https://github.com/acme/moved", f.oldBase)
	return f
}

func testCtx(buf *bytes.Buffer) context.Context {
	ctx := log.WithLogger(context.Background(), log.New(&bytes.Buffer{}, false, false))
	return output.WithPrinter(ctx, buf)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	report, err := Check(testCtx(&bytes.Buffer{}), f.cfg, f.db, f.walker)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}

	want := map[string]FixAction{
		f.changed:     FixUpdate,
		f.stale:       FixRemove,
		f.oldBase:     FixRemove,
		f.orphan:      FixAdd,
		f.noURL:       FixNone,
		f.cfg.Base[1]: FixNone,
	}
	got := make(map[string]FixAction)
	for _, issue := range report.Issues {
		got[issue.Path] = issue.Fix
	}
	for path, fix := range want {
		g, ok := got[path]
		if !ok {
			t.Errorf("no issue for %s", path)
			continue
		}
		if g != fix {
			t.Errorf("issue for %s: fix = %q, want %q", path, g, fix)
		}
	}
	if len(report.Issues) != len(want) {
		t.Errorf("got %d issues, want %d: %+v", len(report.Issues), len(want), report.Issues)
	}

	wantStats := IssueStats{Healthy: 1, Stale: 2, Changed: 1, Untracked: 1, Unusable: 1, Config: 1}
	if report.Stats != wantStats {
		t.Errorf("Stats = %+v, want %+v", report.Stats, wantStats)
	}

	if f.db.Len() != 4 {
		t.Errorf("Check modified the index: %d records, want 4", f.db.Len())
	}
}

func TestCheck_NoBase(t *testing.T) {
	t.Parallel()

	db := database.New(filepath.Join(t.TempDir(), "data.toml"))
	report, err := Check(testCtx(&bytes.Buffer{}), &config.Config{}, db, &scan.Walker{Reader: mapReader{}})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if report.Stats.Config != 1 || len(report.Issues) != 1 {
		t.Errorf("Check() without base = %+v, want one config issue", report)
	}
}

func TestFix(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	report, err := Check(testCtx(&bytes.Buffer{}), f.cfg, f.db, f.walker)
	if err != nil {
		t.Fatal(err)
	}

	fixed, failed := Fix(f.db, report.Issues)
	if fixed != 4 || len(failed) != 0 {
		t.Errorf("Fix() = %d, %v; want 4, none", fixed, failed)
	}

	for _, path := range []string{f.healthy, f.changed, f.orphan} {
		if _, ok := f.db.Get(path); !ok {
			t.Errorf("%s missing after Fix", path)
		}
	}
	for _, path := range []string{f.stale, f.oldBase} {
		if _, ok := f.db.Get(path); ok {
			t.Errorf("%s still indexed after Fix", path)
		}
	}
	if rec, _ := f.db.Get(f.changed); rec.Repo != "renamed" {
		t.Errorf("changed record repo = %q, want renamed", rec.Repo)
	}

	again, err := Check(testCtx(&bytes.Buffer{}), f.cfg, f.db, f.walker)
	if err != nil {
		t.Fatal(err)
	}
	if again.Stats.Stale+again.Stats.Changed+again.Stats.Untracked != 0 {
		t.Errorf("issues left after Fix: %+v", again.Stats)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var buf bytes.Buffer
	if err := Run(testCtx(&buf), f.cfg, f.db, f.walker, false); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"1 of 4 indexed repositories healthy",
		"Index issues:",
		"Orphan issues:",
		"origin changed",
		"Run 'prog doctor --fix' to repair.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Run() output missing %q:\n%s", want, got)
		}
	}
	if f.db.Len() != 4 {
		t.Errorf("Run without fix modified the index")
	}
}
