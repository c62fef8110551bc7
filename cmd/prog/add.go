package main

import (
	"context"
	"fmt"
	"os"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/format"
	"github.com/raphi011/prog/internal/git"
	"github.com/raphi011/prog/internal/log"
	"github.com/raphi011/prog/internal/output"
	"github.com/raphi011/prog/internal/remote"
)

// addTarget is where a remote ends up on disk.
type addTarget struct {
	CloneURL string
	URL      remote.URL
	BaseDir  string
	Path     string
}

// resolveAddTarget expands aliases in raw, parses it and lays it out below
// the primary base using clone_format.
func resolveAddTarget(cfg *config.Config, raw string) (addTarget, error) {
	base, err := cfg.PrimaryBase()
	if err != nil {
		return addTarget{}, err
	}

	cloneURL := remote.ReplaceAlias(raw, cfg.Alias)
	u, ok := remote.Parse(cloneURL)
	if !ok || !u.Complete() {
		return addTarget{}, fmt.Errorf("not a repository URL: %q (expected host, owner and name)", raw)
	}

	return addTarget{
		CloneURL: cloneURL,
		URL:      u,
		BaseDir:  base,
		Path:     format.ClonePath(base, cfg.CloneFormat, u),
	}, nil
}

// addRepo clones raw into the base layout unless the target already exists,
// records it in the index and prints the path.
func addRepo(ctx context.Context, cfg *config.Config, raw string, cloneArgs []string) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	t, err := resolveAddTarget(cfg, raw)
	if err != nil {
		return err
	}
	l.Debug("resolved clone target", "url", t.CloneURL, "path", t.Path)

	remoteURL, u := t.CloneURL, t.URL
	if !pathExists(t.Path) {
		// git writes progress to stderr; stdout carries only the path.
		if err := git.Clone(ctx, t.CloneURL, t.Path, cloneArgs, l.Writer()); err != nil {
			os.RemoveAll(t.Path)
			return err
		}
	} else {
		// Index what sync would see, not what was asked for.
		if remoteURL, u, err = existingOrigin(ctx, t.Path); err != nil {
			return err
		}
		l.Printf("Already cloned: %s\n", t.Path)
	}

	db := database.Load(ctx, cfg.DataFile())
	if err := db.RecordItem(t.BaseDir, remoteURL, u, t.Path); err != nil {
		return fmt.Errorf("index %s: %w", t.Path, err)
	}
	if err := db.Save(ctx); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	out.Println(t.Path)
	copyPath(ctx, t.Path)
	return nil
}

// existingOrigin reads the origin of a working directory already sitting at
// path.
func existingOrigin(ctx context.Context, path string) (string, remote.URL, error) {
	if !git.IsGitRepo(path) {
		return "", remote.URL{}, fmt.Errorf("%s exists but is not a git repository", path)
	}
	origin, err := git.OriginURL(ctx, path)
	if err != nil {
		return "", remote.URL{}, fmt.Errorf("%s exists but has no origin: %w", path, err)
	}
	u, ok := remote.Parse(origin)
	if origin == "" || !ok || !u.Complete() {
		return "", remote.URL{}, fmt.Errorf("%s exists but its origin %q is not a repository URL", path, origin)
	}
	return origin, u, nil
}
