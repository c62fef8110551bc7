// Package doctor diagnoses and optionally repairs the repository index.
//
// Run compares the persisted index with a fresh walk of the base
// directories and reports:
//
//   - Config issues: base directories that are missing or not configured.
//
//   - Index issues: records whose path vanished, is no longer a usable
//     repository, sits below a base that was removed from the config, or
//     whose origin changed since the last sync.
//
//   - Orphan issues: repositories on disk that are not indexed, and
//     directories the walker had to skip.
//
// # Usage
//
//	report, err := doctor.Check(ctx, cfg, db, walker)
//	fixed := doctor.Fix(db, report.Issues)
//
// Each [Issue] carries a [FixAction]; issues with [FixNone] need manual
// attention.
package doctor
