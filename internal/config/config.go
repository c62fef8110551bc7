package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/prog/internal/format"
)

// MaxWorkers caps the sync walker's worker pool.
const MaxWorkers = 12

// DataFileName is the name of the index file inside DataDir.
const DataFileName = "data.toml"

// Remote reader implementations selectable via remote_reader.
const (
	ReaderGit   = "git"
	ReaderGoGit = "go-git"
)

// DefaultAutoSyncInterval is used when auto_sync_interval_secs is not set.
const DefaultAutoSyncInterval = time.Hour

// Config holds the prog configuration
type Config struct {
	Base                 []string          `toml:"base"`
	CloneFormat          string            `toml:"clone_format"`
	AutoSyncIntervalSecs int64             `toml:"auto_sync_interval_secs"`
	DataDir              string            `toml:"data_dir"`
	RemoteReader         string            `toml:"remote_reader"`
	Workers              int               `toml:"workers"`
	Alias                map[string]string `toml:"alias"`
	Theme                ThemeConfig       `toml:"theme"`
}

// ThemeConfig selects the colors and symbols of interactive output.
type ThemeConfig struct {
	Name     string `toml:"name"`     // default, dracula or nord
	Mode     string `toml:"mode"`     // auto, light or dark
	Nerdfont bool   `toml:"nerdfont"` // use nerd font icons in pickers
}

// Default returns the default configuration
func Default() Config {
	return Config{
		CloneFormat:          format.DefaultCloneFormat,
		AutoSyncIntervalSecs: int64(DefaultAutoSyncInterval / time.Second),
		DataDir:              defaultDataDir(),
		RemoteReader:         ReaderGit,
		Workers:              defaultWorkers(),
		Alias: map[string]string{
			"github://":    "https://github.com/",
			"gitlab://":    "https://gitlab.com/",
			"bitbucket://": "https://bitbucket.org/",
		},
	}
}

// AutoSyncInterval returns the auto-sync interval. Zero or negative means
// auto-sync is disabled.
func (c *Config) AutoSyncInterval() time.Duration {
	return time.Duration(c.AutoSyncIntervalSecs) * time.Second
}

// DataFile returns the path of the persisted index.
func (c *Config) DataFile() string {
	return filepath.Join(c.DataDir, DataFileName)
}

// PrimaryBase returns the first configured base directory, where add clones
// new repositories.
func (c *Config) PrimaryBase() (string, error) {
	if len(c.Base) == 0 {
		return "", errors.New("no base directory configured: set base in " + displayConfigPath())
	}
	return c.Base[0], nil
}

func defaultWorkers() int {
	return max(1, min(runtime.NumCPU(), MaxWorkers))
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "prog")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "prog")
	}
	return filepath.Join(home, ".local", "share", "prog")
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file, honouring PROG_CONFIG.
func configPath() (string, error) {
	if p := os.Getenv("PROG_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "prog", "config.toml"), nil
}

func displayConfigPath() string {
	p, err := configPath()
	if err != nil {
		return "~/.config/prog/config.toml"
	}
	return p
}

// Load reads config from ~/.config/prog/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path, then applies environment overrides.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), err
	}
	if err := cfg.normalize(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// applyEnvOverrides applies PROG_* environment variables on top of the
// file settings. Empty variables are ignored.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PROG_BASE"); v != "" {
		cfg.Base = filepath.SplitList(v)
	}
	if v := os.Getenv("PROG_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PROG_AUTO_SYNC_INTERVAL"); v != "" {
		secs, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PROG_AUTO_SYNC_INTERVAL %q: %w", v, err)
		}
		cfg.AutoSyncIntervalSecs = secs
	}
	if v := os.Getenv("PROG_REMOTE_READER"); v != "" {
		cfg.RemoteReader = v
	}
	return nil
}

// normalize validates paths and enums, expands ~ and fills empty values
// with defaults.
func (c *Config) normalize() error {
	base := make([]string, 0, len(c.Base))
	for i, b := range c.Base {
		if b == "" {
			continue
		}
		if err := ValidatePath(b, fmt.Sprintf("base[%d]", i)); err != nil {
			return err
		}
		expanded, err := expandPath(b)
		if err != nil {
			return fmt.Errorf("expand base[%d]: %w", i, err)
		}
		base = append(base, filepath.Clean(expanded))
	}
	c.Base = base

	if c.CloneFormat == "" {
		c.CloneFormat = format.DefaultCloneFormat
	}
	if err := format.ValidateFormat(c.CloneFormat); err != nil {
		return fmt.Errorf("clone_format: %w", err)
	}

	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if err := ValidatePath(c.DataDir, "data_dir"); err != nil {
		return err
	}
	dataDir, err := expandPath(c.DataDir)
	if err != nil {
		return fmt.Errorf("expand data_dir: %w", err)
	}
	c.DataDir = dataDir

	if c.RemoteReader == "" {
		c.RemoteReader = ReaderGit
	}
	if err := validateEnum(c.RemoteReader, "remote_reader", ValidRemoteReaders); err != nil {
		return err
	}

	if c.Workers <= 0 {
		c.Workers = defaultWorkers()
	}
	c.Workers = min(c.Workers, MaxWorkers)

	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

type ctxKey struct{}

// WithConfig attaches the config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config attached to ctx, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(ctxKey{}).(*Config)
	return cfg
}

const defaultConfig = `# prog configuration

# Base directories holding your clones, laid out as <base>/<host>/<owner>/<repo>.
# Each must be absolute or start with ~. "prog add" clones into the first one.
base = ["~/src"]

# Where "prog add" clones below the first base. Placeholders: {host},
# {owner}, {repo}. At most three levels deep so sync can find the clone.
# clone_format = "{host}/{owner}/{repo}"

# Re-index automatically when the last sync is older than this many seconds.
# 0 disables auto-sync. Run "prog sync" to re-index by hand.
auto_sync_interval_secs = 3600

# Where the index (data.toml) is stored.
# data_dir = "~/.local/share/prog"

# How remote URLs are read during sync:
#   "git"    - run "git remote get-url origin" (honours insteadOf rewrites)
#   "go-git" - read .git/config in-process (faster, no rewrites)
# remote_reader = "git"

# Parallel sync workers (1-12). Defaults to the number of CPUs, capped at 12.
# workers = 8

# Colors of the interactive picker and tables.
# [theme]
# name = "default"   # default, dracula or nord
# mode = "auto"      # auto, light or dark
# nerdfont = false

# URL prefix aliases for "prog add", e.g. "prog add github://owner/repo".
# The longest matching prefix wins.
[alias]
"github://" = "https://github.com/"
"gitlab://" = "https://gitlab.com/"
"bitbucket://" = "https://bitbucket.org/"
`

// DefaultConfig returns the commented default config file.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at ~/.config/prog/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Path returns the config file location.
func Path() string {
	return displayConfigPath()
}
