// Package scan discovers git working directories below the configured base
// directories and rebuilds the index from them.
//
// The walk descends at most three levels (host/owner/repo) below each base,
// skips hidden entries and never follows symlinks. Directories are visited
// on a bounded errgroup; results flow over a single channel to one consumer
// that owns the new index, so the index itself needs no locking.
//
// Per-repository problems (unreadable directory, no origin, unparsable
// remote URL) are logged and counted as skips. Only cancellation aborts a
// walk, in which case the previous index is kept.
package scan
