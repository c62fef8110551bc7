// Package git wraps the git operations prog needs: reading a working
// directory's origin URL and cloning new repositories.
//
// The default remote reader shells out to the git CLI so that the user's
// configuration applies. [GoGitReader] reads .git/config in-process with
// go-git and is noticeably faster on large trees; it follows linked worktrees
// to their common directory.
package git
