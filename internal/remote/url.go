// Package remote parses git remote URLs into host, owner and repository name.
//
// Three syntaxes are recognised, tried in this order:
//
//	scheme://[user@]host[:port]/owner/name[.git]   (https, ssh, git, file...)
//	[user@]host:owner/name[.git]                   (scp-like)
//	host/owner/name[.git]                          (bare)
//
// Nested group paths such as gitlab.com/group/sub/repo keep every segment
// except the last in Owner ("group/sub").
package remote

import (
	"strings"
)

// URL is a parsed remote.
type URL struct {
	Host     string
	Owner    string
	Name     string
	FullName string // "owner/name", or just name when there is no owner
}

// Valid reports whether both host and owner are present and non-blank.
// A URL can parse but still be invalid, e.g. "https:///owner/repo".
func (u URL) Valid() bool {
	return strings.TrimSpace(u.Host) != "" && strings.TrimSpace(u.Owner) != ""
}

// Complete reports whether the URL is valid and also names a repository.
func (u URL) Complete() bool {
	return u.Valid() && strings.TrimSpace(u.Name) != ""
}

// Parse parses a remote URL. It returns false for blank input and for input
// without a name segment.
func Parse(s string) (URL, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return URL{}, false
	}

	if idx := strings.Index(s, "://"); idx >= 0 {
		return parseScheme(s[idx+3:])
	}

	at, colon := strings.LastIndex(s, "@"), strings.LastIndex(s, ":")
	if at >= 0 && colon >= 0 && at < colon {
		return parsePath(s[at+1:colon], s[colon+1:])
	}

	host, path, ok := strings.Cut(s, "/")
	if !ok {
		return URL{}, false
	}
	if strings.ContainsAny(host, ":@") {
		host = ""
	}
	// A bare triple needs at least owner/name after the host.
	if !strings.Contains(path, "/") {
		return URL{}, false
	}
	return parsePath(host, path)
}

func parseScheme(rest string) (URL, bool) {
	// user@ only counts when it sits before the first slash.
	if at := strings.Index(rest, "@"); at >= 0 && !strings.Contains(rest[:at], "/") {
		rest = rest[at+1:]
	}
	host, path, ok := strings.Cut(rest, "/")
	if !ok {
		return URL{}, false
	}
	return parsePath(stripPort(host), path)
}

func parsePath(host, path string) (URL, bool) {
	segs := strings.Split(path, "/")
	if len(segs) > 2 && segs[len(segs)-1] == "" {
		segs = segs[:len(segs)-1]
	}
	if len(segs) < 2 {
		return URL{}, false
	}

	owner := strings.Join(segs[:len(segs)-1], "/")
	name := strings.TrimSuffix(segs[len(segs)-1], ".git")
	return build(host, owner, name), true
}

func build(host, owner, name string) URL {
	full := name
	if owner != "" {
		full = owner + "/" + name
	}
	return URL{Host: host, Owner: owner, Name: name, FullName: full}
}

// stripPort removes a trailing :port from a host. IPv6 literals keep their
// brackets.
func stripPort(host string) string {
	i := strings.LastIndex(host, ":")
	if i < 0 || strings.HasSuffix(host, "]") {
		return host
	}
	for _, r := range host[i+1:] {
		if r < '0' || r > '9' {
			return host
		}
	}
	return host[:i]
}

// ReplaceAlias rewrites the first matching alias prefix of raw. The longest
// matching alias wins so that overlapping aliases are deterministic.
func ReplaceAlias(raw string, aliases map[string]string) string {
	best := ""
	for alias := range aliases {
		if strings.HasPrefix(raw, alias) && len(alias) > len(best) {
			best = alias
		}
	}
	if best == "" {
		return raw
	}
	return aliases[best] + strings.TrimPrefix(raw, best)
}
