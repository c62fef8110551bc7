// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Failures carry the command's trimmed stderr as the error message, which is
// what git prints for the user anyway. Every invocation is traced through the
// context logger when verbose mode is on.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, dir, "git", "remote", "get-url", "origin")
//	if err != nil {
//	    return fmt.Errorf("read origin: %w", err)
//	}
//
// prog shells out to git rather than linking a git implementation by default
// so that user configuration (insteadOf rewrites, includeIf) is honoured.
package cmd
