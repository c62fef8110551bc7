// Package format builds clone paths and human-readable timestamps.
//
// # Clone Layout
//
// "prog add" clones into <base>/<layout>, where layout is the clone_format
// config value with placeholders substituted from the parsed remote URL:
//
//   - {host}: remote host, e.g. "github.com"
//   - {owner}: owner or group path, e.g. "raphi011" or "group/sub"
//   - {repo}: repository name without ".git"
//
// The default is "{host}/{owner}/{repo}". Every value is sanitized before
// substitution, so a nested group like "group/sub" becomes "group-sub" and
// the clone stays within the three levels sync walks.
//
// # Validation
//
// Use [ValidateFormat] to check format strings before use. It ensures:
//   - All placeholders are recognized
//   - {repo} is present
//   - The layout is at most three path segments deep
package format
