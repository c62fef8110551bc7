package main

import (
	"testing"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/format"
)

func TestResolveAddTarget(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Base:        []string{"/src", "/work"},
		CloneFormat: format.DefaultCloneFormat,
		Alias: map[string]string{
			"github://": "https://github.com/",
			"gh://":     "git@github.com:",
		},
	}

	tests := []struct {
		name     string
		raw      string
		format   string
		wantURL  string
		wantPath string
		wantErr  bool
	}{
		{
			name:     "https",
			raw:      "https://github.com/spf13/cobra",
			wantURL:  "https://github.com/spf13/cobra",
			wantPath: "/src/github.com/spf13/cobra",
		},
		{
			name:     "scp style with .git",
			raw:      "git@github.com:charmbracelet/bubbletea.git",
			wantURL:  "git@github.com:charmbracelet/bubbletea.git",
			wantPath: "/src/github.com/charmbracelet/bubbletea",
		},
		{
			name:     "alias",
			raw:      "github://raphi011/wt",
			wantURL:  "https://github.com/raphi011/wt",
			wantPath: "/src/github.com/raphi011/wt",
		},
		{
			name:     "ssh alias",
			raw:      "gh://raphi011/wt",
			wantURL:  "git@github.com:raphi011/wt",
			wantPath: "/src/github.com/raphi011/wt",
		},
		{
			name:     "nested group is flattened",
			raw:      "https://gitlab.com/group/sub/project.git",
			wantURL:  "https://gitlab.com/group/sub/project.git",
			wantPath: "/src/gitlab.com/group-sub/project",
		},
		{
			name:     "custom format",
			raw:      "https://github.com/spf13/cobra",
			format:   "{owner}/{repo}",
			wantURL:  "https://github.com/spf13/cobra",
			wantPath: "/src/spf13/cobra",
		},
		{
			name:    "missing host",
			raw:     "spf13/cobra",
			wantErr: true,
		},
		{
			name:    "not a url",
			raw:     "cobra",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := *cfg
			if tt.format != "" {
				c.CloneFormat = tt.format
			}
			got, err := resolveAddTarget(&c, tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveAddTarget(%q) = %+v, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveAddTarget(%q) error: %v", tt.raw, err)
			}
			if got.CloneURL != tt.wantURL {
				t.Errorf("CloneURL = %q, want %q", got.CloneURL, tt.wantURL)
			}
			if got.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", got.Path, tt.wantPath)
			}
			if got.BaseDir != "/src" {
				t.Errorf("BaseDir = %q, want /src", got.BaseDir)
			}
		})
	}
}

func TestResolveAddTarget_NoBase(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{CloneFormat: format.DefaultCloneFormat}
	if _, err := resolveAddTarget(cfg, "https://github.com/spf13/cobra"); err == nil {
		t.Error("resolveAddTarget() without base: want error")
	}
}
