package config

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.AutoSyncInterval() != time.Hour {
		t.Errorf("AutoSyncInterval() = %v, want 1h", cfg.AutoSyncInterval())
	}
	if cfg.RemoteReader != ReaderGit {
		t.Errorf("RemoteReader = %q, want %q", cfg.RemoteReader, ReaderGit)
	}
	if cfg.Workers < 1 || cfg.Workers > MaxWorkers {
		t.Errorf("Workers = %d, want 1..%d", cfg.Workers, MaxWorkers)
	}
	if cfg.Alias["github://"] != "https://github.com/" {
		t.Errorf("Alias[github://] = %q", cfg.Alias["github://"])
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	var cfg Config
	if _, err := toml.Decode(defaultConfig, &cfg); err != nil {
		t.Fatalf("default config is not valid TOML: %v", err)
	}
	if !slices.Equal(cfg.Base, []string{"~/src"}) {
		t.Errorf("Base = %v, want [~/src]", cfg.Base)
	}
	if cfg.AutoSyncIntervalSecs != 3600 {
		t.Errorf("AutoSyncIntervalSecs = %d, want 3600", cfg.AutoSyncIntervalSecs)
	}
	if len(cfg.Alias) != 3 {
		t.Errorf("Alias has %d entries, want 3", len(cfg.Alias))
	}
}

func TestLoadFile(t *testing.T) {
	// Cannot use t.Parallel() because env overrides are read
	home, _ := os.UserHomeDir()

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if cfg.AutoSyncIntervalSecs != 3600 || len(cfg.Base) != 0 {
			t.Errorf("LoadFile(missing) = %+v, want defaults", cfg)
		}
	})

	t.Run("expands and cleans base", func(t *testing.T) {
		path := writeConfig(t, `base = ["~/work", "/srv/git/", ""]
auto_sync_interval_secs = 0
remote_reader = "go-git"
workers = 64
`)
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		want := []string{filepath.Join(home, "work"), "/srv/git"}
		if !slices.Equal(cfg.Base, want) {
			t.Errorf("Base = %v, want %v", cfg.Base, want)
		}
		if cfg.AutoSyncInterval() != 0 {
			t.Errorf("AutoSyncInterval() = %v, want 0 (disabled)", cfg.AutoSyncInterval())
		}
		if cfg.RemoteReader != ReaderGoGit {
			t.Errorf("RemoteReader = %q", cfg.RemoteReader)
		}
		if cfg.Workers != MaxWorkers {
			t.Errorf("Workers = %d, want clamp to %d", cfg.Workers, MaxWorkers)
		}
	})

	t.Run("user alias merges with defaults", func(t *testing.T) {
		path := writeConfig(t, `[alias]
"corp://" = "git@git.corp.com:"
`)
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if cfg.Alias["corp://"] != "git@git.corp.com:" {
			t.Errorf("Alias[corp://] = %q", cfg.Alias["corp://"])
		}
	})

	errCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"relative base", `base = ["src"]`, "base[0] must be absolute"},
		{"relative data_dir", `data_dir = "./data"`, "data_dir must be absolute"},
		{"bad reader", `remote_reader = "libgit2"`, `invalid remote_reader "libgit2"`},
		{"bad toml", `base = [`, "failed to parse config file"},
		{"deep clone format", `clone_format = "a/{host}/{owner}/{repo}"`, "clone_format: format"},
		{"bad theme", "[theme]\nname = \"solarized\"", `invalid theme.name "solarized"`},
		{"bad theme mode", "[theme]\nmode = \"dim\"", `invalid theme.mode "dim"`},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	// Cannot use t.Parallel(): t.Setenv mutates process env
	t.Run("PROG_BASE splits list", func(t *testing.T) {
		t.Setenv("PROG_BASE", "/a"+string(os.PathListSeparator)+"/b")
		cfg := Default()
		if err := applyEnvOverrides(&cfg); err != nil {
			t.Fatalf("applyEnvOverrides error: %v", err)
		}
		if !slices.Equal(cfg.Base, []string{"/a", "/b"}) {
			t.Errorf("Base = %v, want [/a /b]", cfg.Base)
		}
	})

	t.Run("PROG_AUTO_SYNC_INTERVAL", func(t *testing.T) {
		t.Setenv("PROG_AUTO_SYNC_INTERVAL", "60")
		cfg := Default()
		if err := applyEnvOverrides(&cfg); err != nil {
			t.Fatalf("applyEnvOverrides error: %v", err)
		}
		if cfg.AutoSyncInterval() != time.Minute {
			t.Errorf("AutoSyncInterval() = %v, want 1m", cfg.AutoSyncInterval())
		}
	})

	t.Run("invalid interval", func(t *testing.T) {
		t.Setenv("PROG_AUTO_SYNC_INTERVAL", "soon")
		cfg := Default()
		if err := applyEnvOverrides(&cfg); err == nil {
			t.Error("applyEnvOverrides() = nil, want error")
		}
	})

	t.Run("empty env vars leave config unchanged", func(t *testing.T) {
		t.Setenv("PROG_BASE", "")
		t.Setenv("PROG_DATA_DIR", "")
		cfg := Config{Base: []string{"/keep"}, DataDir: "/data"}
		if err := applyEnvOverrides(&cfg); err != nil {
			t.Fatalf("applyEnvOverrides error: %v", err)
		}
		if !slices.Equal(cfg.Base, []string{"/keep"}) || cfg.DataDir != "/data" {
			t.Errorf("config changed: %+v", cfg)
		}
	})
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog", "config.toml")
	t.Setenv("PROG_CONFIG", path)

	got, err := Init(false)
	if err != nil {
		t.Fatalf("Init(false) error = %v", err)
	}
	if got != path {
		t.Errorf("Init() path = %q, want %q", got, path)
	}
	if _, err := Init(false); err == nil {
		t.Error("second Init(false) = nil, want already exists error")
	}
	if _, err := Init(true); err != nil {
		t.Errorf("Init(true) error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() after Init error = %v", err)
	}
	if len(cfg.Base) != 1 {
		t.Errorf("Base = %v, want one entry from default file", cfg.Base)
	}
}

func TestPrimaryBase(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	if _, err := cfg.PrimaryBase(); err == nil {
		t.Error("PrimaryBase() with no base = nil error")
	}
	cfg.Base = []string{"/a", "/b"}
	if got, _ := cfg.PrimaryBase(); got != "/a" {
		t.Errorf("PrimaryBase() = %q, want /a", got)
	}
	if got := cfg.DataFile(); got != filepath.Join("", DataFileName) {
		t.Errorf("DataFile() = %q", got)
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{RemoteReader: ReaderGoGit}
		got := FromContext(WithConfig(context.Background(), cfg))
		if got != cfg {
			t.Error("FromContext did not return the stored config")
		}
	})

	t.Run("nil when not set", func(t *testing.T) {
		t.Parallel()
		if got := FromContext(context.Background()); got != nil {
			t.Errorf("FromContext on empty context = %v, want nil", got)
		}
	})
}

func TestValidateEnum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		wantErr bool
	}{
		{"git", false},
		{"go-git", false},
		{"", false},
		{"svn", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			err := validateEnum(tt.value, "remote_reader", ValidRemoteReaders)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEnum(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	if got := formatOptions([]string{"a", "b"}); got != `"a" or "b"` {
		t.Errorf("formatOptions(2) = %s", got)
	}
	if got := formatOptions([]string{"a", "b", "c"}); got != `"a", "b", or "c"` {
		t.Errorf("formatOptions(3) = %s", got)
	}
}
