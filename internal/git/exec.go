package git

import (
	"context"

	"github.com/raphi011/prog/internal/cmd"
)

// gitArgs prepends -C <dir> so the child never depends on the process
// working directory.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// outputGit runs git in dir and returns stdout. The command is traced
// when verbose logging is on.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}
