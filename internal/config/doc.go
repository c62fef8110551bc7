// Package config handles loading and validation of prog configuration.
//
// Configuration is read from ~/.config/prog/config.toml (or the file named by
// PROG_CONFIG) with environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - PROG_BASE: base directories, separated like PATH
//   - PROG_DATA_DIR: directory holding data.toml
//   - PROG_AUTO_SYNC_INTERVAL: auto-sync interval in seconds
//   - PROG_REMOTE_READER: "git" or "go-git"
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - base: directories scanned by sync (must be absolute or ~/...)
//   - auto_sync_interval_secs: re-index when the last sync is older (0 disables)
//   - remote_reader: how origin URLs are read during sync
//   - [alias]: URL prefix rewrites used by "prog add"
//
// The loaded config is passed explicitly or carried on the context with
// [WithConfig]; there is no package-level state.
package config
