package database

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/remote"
)

func testCtx(buf *bytes.Buffer) context.Context {
	return log.WithLogger(context.Background(), log.New(buf, true, false))
}

func mustParse(t *testing.T, raw string) remote.URL {
	t.Helper()
	u, ok := remote.Parse(raw)
	if !ok {
		t.Fatalf("Parse(%q) failed", raw)
	}
	return u
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	db := Load(testCtx(&logs), filepath.Join(t.TempDir(), "data.toml"))
	if db.Len() != 0 {
		t.Errorf("Len() = %d, want 0", db.Len())
	}
	if _, ok := db.LastSyncTime(); ok {
		t.Error("LastSyncTime() ok = true for fresh database")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.toml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	db := Load(testCtx(&logs), path)
	if db.Len() != 0 {
		t.Errorf("Len() = %d, want 0", db.Len())
	}
	if strings.Contains(logs.String(), "Error") {
		t.Errorf("empty file logged an error: %s", logs.String())
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.toml")
	if err := os.WriteFile(path, []byte("records = [[[\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	db := Load(testCtx(&logs), path)
	if db.Len() != 0 {
		t.Errorf("Len() = %d, want 0", db.Len())
	}
	if !strings.Contains(logs.String(), "Error: unreadable index") {
		t.Errorf("corrupt file not logged as error: %q", logs.String())
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("corrupt file not moved aside: %v", err)
	}
	if err := db.Save(testCtx(&logs)); err != nil {
		t.Fatalf("Save() after corrupt load error = %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	ctx := testCtx(&logs)
	path := filepath.Join(t.TempDir(), "nested", "data.toml")

	db := New(path)
	urls := []string{
		"git@github.com:raphi011/wt.git",
		"https://github.com/charmbracelet/bubbletea",
		"https://gitlab.com/group/sub/tool.git",
	}
	for _, raw := range urls {
		u := mustParse(t, raw)
		full := filepath.Join("/src", u.Host, u.Owner, u.Name)
		if err := db.RecordItem("/src", raw, u, full); err != nil {
			t.Fatalf("RecordItem(%s) error = %v", raw, err)
		}
	}
	db.UpdateLastSyncTime()
	wantSync, _ := db.LastSyncTime()

	if err := db.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := Load(ctx, path)
	if loaded.Len() != len(urls) {
		t.Fatalf("loaded Len() = %d, want %d", loaded.Len(), len(urls))
	}
	for _, rec := range db.AllItems() {
		got, ok := loaded.Get(rec.FullPath)
		if !ok {
			t.Errorf("Get(%s) missing after round trip", rec.FullPath)
			continue
		}
		if got.Host != rec.Host || got.Owner != rec.Owner || got.Repo != rec.Repo || got.RemoteURL != rec.RemoteURL {
			t.Errorf("record %s = %+v, want %+v", rec.FullPath, got, rec)
		}
		if !got.CreatedAt.Equal(rec.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
		}
	}
	gotSync, ok := loaded.LastSyncTime()
	if !ok || !gotSync.Equal(wantSync) {
		t.Errorf("LastSyncTime() = %v, %v, want %v", gotSync, ok, wantSync)
	}
	if got := len(loaded.Store().GetByOwner("group/sub")); got != 1 {
		t.Errorf("owner index after load has %d entries, want 1", got)
	}
}

func TestLoad_SkipsInvalidRecords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.toml")
	content := `version = "1.0"

[[records]]
host = "github.com"
owner = "raphi011"
repo = "wt"
remote_url = "git@github.com:raphi011/wt.git"
base_dir = "/src"
full_path = "/src/github.com/raphi011/wt"
created_at = 2025-01-01T00:00:00Z
updated_at = 2025-02-01T00:00:00Z

[[records]]
host = ""
owner = "nobody"
repo = "broken"
full_path = "/src/broken"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	db := Load(testCtx(&logs), path)
	if db.Len() != 1 {
		t.Errorf("Len() = %d, want 1", db.Len())
	}
	if !strings.Contains(logs.String(), "skipping invalid index record") {
		t.Errorf("invalid record not warned about: %q", logs.String())
	}
}

func TestRecordItem_PreservesCreatedAt(t *testing.T) {
	t.Parallel()

	db := New(filepath.Join(t.TempDir(), "data.toml"))
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return clock }

	u := mustParse(t, "git@github.com:o/r.git")
	if err := db.RecordItem("/src", "git@github.com:o/r.git", u, "/src/github.com/o/r"); err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(48 * time.Hour)
	if err := db.RecordItem("/src", "git@github.com:o/r.git", u, "/src/github.com/o/r"); err != nil {
		t.Fatal(err)
	}

	rec, _ := db.Get("/src/github.com/o/r")
	if !rec.CreatedAt.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v, want first insert time", rec.CreatedAt)
	}
	if !rec.UpdatedAt.Equal(clock) {
		t.Errorf("UpdatedAt = %v, want %v", rec.UpdatedAt, clock)
	}
}

func TestRecordItem_RejectsInvalid(t *testing.T) {
	t.Parallel()

	db := New(filepath.Join(t.TempDir(), "data.toml"))
	u := remote.URL{Owner: "owner", Name: "repo", FullName: "owner/repo"}
	if err := db.RecordItem("/src", "https:///owner/repo", u, "/src/x"); err == nil {
		t.Error("RecordItem() with empty host = nil error")
	}
}

func TestSyncDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastSync time.Time
		interval time.Duration
		want     bool
	}{
		{"disabled", time.Time{}, 0, false},
		{"negative disables", time.Time{}, -time.Second, false},
		{"never synced", time.Time{}, time.Hour, true},
		{"recent", now.Add(-30 * time.Minute), time.Hour, false},
		{"exactly interval", now.Add(-time.Hour), time.Hour, false},
		{"stale", now.Add(-2 * time.Hour), time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db := New("unused")
			db.now = func() time.Time { return now }
			db.lastSync = tt.lastSync
			if got := db.SyncDue(tt.interval); got != tt.want {
				t.Errorf("SyncDue(%v) = %v, want %v", tt.interval, got, tt.want)
			}
		})
	}
}

func TestResetAndRemove(t *testing.T) {
	t.Parallel()

	db := New("unused")
	_ = db.Store().Insert(index.Record{Host: "h", Owner: "o", Repo: "r", FullPath: "/p/1"})
	_ = db.Store().Insert(index.Record{Host: "h", Owner: "o", Repo: "s", FullPath: "/p/2"})
	db.UpdateLastSyncTime()

	if !db.Remove("/p/1") || db.Remove("/p/1") {
		t.Error("Remove() should report existence exactly once")
	}
	db.Reset()
	if db.Len() != 0 {
		t.Errorf("Len() after Reset = %d", db.Len())
	}
	if _, ok := db.LastSyncTime(); ok {
		t.Error("Reset() kept last sync time")
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	db := New("unused")
	for _, raw := range []string{"git@github.com:a/prog.git", "git@github.com:b/program.git"} {
		u := mustParse(t, raw)
		if err := db.RecordItem("/src", raw, u, "/src/"+u.Host+"/"+u.FullName); err != nil {
			t.Fatal(err)
		}
	}
	res := db.Find("prog")
	if len(res) != 2 || res[0].Repo != "prog" {
		t.Errorf("Find(prog) = %+v, want prog first of 2", res)
	}
}
