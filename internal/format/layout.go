package format

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/remote"
)

// DefaultCloneFormat mirrors the layout sync expects.
const DefaultCloneFormat = "{host}/{owner}/{repo}"

// MaxDepth is how many directory levels below a base sync descends.
const MaxDepth = 3

// ValidPlaceholders lists all supported placeholders
var ValidPlaceholders = []string{"{host}", "{owner}", "{repo}"}

var placeholderRegex = regexp.MustCompile(`\{[a-z-]+\}`)

// ValidateFormat checks if a clone format string is usable.
func ValidateFormat(format string) error {
	for _, match := range placeholderRegex.FindAllString(format, -1) {
		if !slices.Contains(ValidPlaceholders, match) {
			return fmt.Errorf("unknown placeholder %q in format %q (valid: %s)",
				match, format, strings.Join(ValidPlaceholders, ", "))
		}
	}
	if !strings.Contains(format, "{repo}") {
		return fmt.Errorf("format %q must contain {repo}", format)
	}
	if strings.HasPrefix(format, "/") {
		return fmt.Errorf("format %q must be relative to the base directory", format)
	}
	segments := strings.Split(strings.Trim(format, "/"), "/")
	if len(segments) > MaxDepth {
		return fmt.Errorf("format %q is %d levels deep, sync only looks %d levels below a base",
			format, len(segments), MaxDepth)
	}
	if slices.Contains(segments, "..") {
		return fmt.Errorf("format %q must not contain ..", format)
	}
	return nil
}

// ClonePath returns where u is cloned below base.
func ClonePath(base, format string, u remote.URL) string {
	rel := strings.NewReplacer(
		"{host}", SanitizeForPath(u.Host),
		"{owner}", SanitizeForPath(u.Owner),
		"{repo}", SanitizeForPath(u.Name),
	).Replace(format)
	return filepath.Join(base, filepath.FromSlash(rel))
}

var pathReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "-",
	"\"", "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// SanitizeForPath replaces characters that are problematic in file paths
// Replaces: / \ : * ? " < > | with -
func SanitizeForPath(name string) string {
	return pathReplacer.Replace(name)
}

// HostDir returns the directory of rec's host as laid out below its base,
// e.g. <base>/github.com. ok is false when the layout has no host level.
func HostDir(rec index.Record) (dir string, ok bool) {
	return layoutDir(rec, rec.Host, false)
}

// OwnerDir returns the directory of rec's owner as laid out below its base.
// A nested owner matches both the sanitized form add clones into
// (group-sub) and a literal group/sub tree.
func OwnerDir(rec index.Record) (dir string, ok bool) {
	return layoutDir(rec, rec.Owner, true)
}

// layoutDir walks the directories between rec's base and its working
// directory looking for name. Hosts take the outermost match, owners the
// innermost.
func layoutDir(rec index.Record, name string, innermost bool) (string, bool) {
	if name == "" || rec.BaseDir == "" {
		return "", false
	}
	rel, err := filepath.Rel(rec.BaseDir, filepath.Dir(rec.FullPath))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	segs := strings.Split(filepath.ToSlash(rel), "/")
	forms := [][]string{{SanitizeForPath(name)}}
	if strings.Contains(name, "/") {
		forms = append(forms, strings.Split(name, "/"))
	}

	end := -1
	for i := range segs {
		for _, form := range forms {
			if !segmentsMatch(segs, i, form) {
				continue
			}
			if end < 0 || innermost {
				end = i
			}
		}
		if end >= 0 && !innermost {
			break
		}
	}
	if end < 0 {
		return "", false
	}
	return filepath.Join(rec.BaseDir, filepath.FromSlash(strings.Join(segs[:end+1], "/"))), true
}

// segmentsMatch reports whether form ends at segs[end].
func segmentsMatch(segs []string, end int, form []string) bool {
	start := end - len(form) + 1
	if start < 0 {
		return false
	}
	for j, f := range form {
		if !strings.EqualFold(segs[start+j], f) {
			return false
		}
	}
	return true
}
