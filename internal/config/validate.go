package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidRemoteReaders lists the accepted remote_reader values.
var ValidRemoteReaders = []string{ReaderGit, ReaderGoGit}

// ValidThemeNames lists the built-in theme families.
var ValidThemeNames = []string{"default", "dracula", "nord"}

// ValidThemeModes lists the accepted theme.mode values.
var ValidThemeModes = []string{"auto", "light", "dark"}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
