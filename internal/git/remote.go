package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// OriginURL returns the URL of the origin remote of the working directory
// at dir, as reported by `git remote get-url origin`. URL rewrites from the
// user's git config (url.<base>.insteadOf) are applied.
func OriginURL(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("get origin url: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CLIReader reads remote URLs by running the git binary.
type CLIReader struct{}

func (CLIReader) RemoteURL(ctx context.Context, dir string) (string, error) {
	return OriginURL(ctx, dir)
}

// GoGitReader reads remote URLs from the repository config in-process,
// without spawning git. It does not apply insteadOf rewrites.
type GoGitReader struct{}

// RemoteURL returns the first URL of the origin remote, or "" when the
// repository has no origin.
func (GoGitReader) RemoteURL(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", dir, err)
	}
	origin, err := repo.Remote("origin")
	if errors.Is(err, gogit.ErrRemoteNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read origin of %s: %w", dir, err)
	}
	if urls := origin.Config().URLs; len(urls) > 0 {
		return urls[0], nil
	}
	return "", nil
}
