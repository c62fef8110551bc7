package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/raphi011/prog/internal/cmd"
)

// Clone runs `git clone [extraArgs...] url target`, streaming git's
// progress output to w. Parent directories of target are created first.
func Clone(ctx context.Context, url, target string, extraArgs []string, w io.Writer) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", target, err)
	}

	args := append([]string{"clone"}, extraArgs...)
	args = append(args, url, target)
	if err := cmd.RunStreaming(ctx, "", w, w, "git", args...); err != nil {
		return fmt.Errorf("git clone %s: %w", url, err)
	}
	return nil
}
