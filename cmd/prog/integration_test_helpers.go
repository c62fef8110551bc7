//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/format"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// testConfig returns a config with one base directory and its own data dir.
func testConfig(t *testing.T, reader string) *config.Config {
	t.Helper()
	return &config.Config{
		Base:         []string{resolvePath(t, t.TempDir())},
		CloneFormat:  format.DefaultCloneFormat,
		DataDir:      resolvePath(t, t.TempDir()),
		RemoteReader: reader,
		Workers:      2,
	}
}

// setupTestRepo creates a git repo at base/host/owner/name whose origin is
// the matching https URL. An empty host creates a repo without origin.
func setupTestRepo(t *testing.T, base, host, owner, name string) string {
	t.Helper()

	repoPath := filepath.Join(base, host, owner, name)
	if err := os.MkdirAll(repoPath, 0o755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}
	runGitCommand(t, repoPath, "git", "init", "-q")
	if host != "" {
		runGitCommand(t, repoPath, "git", "remote", "add", "origin", "https://"+host+"/"+owner+"/"+name+".git")
	}
	return repoPath
}

// runGitCommand runs a git command and returns output
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// testRoot builds a root command holding the given subcommands, without
// the global git check.
func testRoot(cmds ...*cobra.Command) *cobra.Command {
	root := &cobra.Command{
		Use:           "prog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core"},
		&cobra.Group{ID: GroupIndex, Title: "Index"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration"},
	)
	root.AddCommand(cmds...)
	return root
}

// runCommand executes args against a fresh tree with cfg in the context and
// returns what the command printed to stdout and to the log.
func runCommand(t *testing.T, cfg *config.Config, cmd *cobra.Command, args ...string) (stdout, logs string, err error) {
	t.Helper()

	var out, l bytes.Buffer
	ctx := config.WithConfig(context.Background(), cfg)
	ctx = log.WithLogger(ctx, log.New(&l, false, false))
	ctx = output.WithPrinter(ctx, &out)

	root := testRoot(cmd)
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	return out.String(), l.String(), err
}

// loadDB reads the index written by a command.
func loadDB(t *testing.T, cfg *config.Config) *database.Database {
	t.Helper()
	return database.Load(context.Background(), cfg.DataFile())
}
