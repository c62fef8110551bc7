package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsGitRepo reports whether path is a working directory: it holds a .git
// directory (regular clone) or a .git file (linked worktree or submodule).
func IsGitRepo(path string) bool {
	info, err := os.Lstat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}
