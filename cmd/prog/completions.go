package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/index"
)

// completionStore loads the index without auto-sync so completion never
// walks the disk.
func completionStore(ctx context.Context) *index.Store {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.FromContext(ctx)
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil
		}
		cfg = &loaded
	}
	return database.Load(ctx, cfg.DataFile()).Store()
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}

// completeRepoNames completes the first argument with indexed repo names.
func completeRepoNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s := completionStore(cmd.Context())
	if s == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(s.RepoNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeIndexKeys builds a flag completion function over one of the
// store's key lists.
func completeIndexKeys(keys func(*index.Store) []string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		s := completionStore(cmd.Context())
		if s == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return filterPrefix(keys(s), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeIndexedPaths completes full paths of indexed repositories.
func completeIndexedPaths(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s := completionStore(cmd.Context())
	if s == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var paths []string
	for _, r := range s.GetByPrefix(toComplete) {
		paths = append(paths, r.FullPath)
	}
	return paths, cobra.ShellCompDirectiveNoFileComp
}
