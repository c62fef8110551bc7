package doctor

import "github.com/raphi011/prog/internal/index"

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryConfig represents problems with the configured base directories.
	CategoryConfig IssueCategory = "config"
	// CategoryIndex represents indexed records that no longer match the disk.
	CategoryIndex IssueCategory = "index"
	// CategoryOrphan represents repositories on disk the index does not know.
	CategoryOrphan IssueCategory = "orphan"
)

// FixAction is what Fix does about an issue.
type FixAction string

const (
	FixNone   FixAction = ""
	FixRemove FixAction = "remove"
	FixUpdate FixAction = "update"
	FixAdd    FixAction = "add"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Path        string        // record path or directory
	Description string        // human-readable description
	Fix         FixAction     // what --fix would do
	Category    IssueCategory // issue category
	Record      index.Record  // replacement record for FixUpdate and FixAdd
}

// IssueStats tracks counts by kind.
type IssueStats struct {
	Healthy   int // records matching the disk
	Stale     int // records to remove
	Changed   int // records whose origin changed
	Untracked int // repositories on disk but not indexed
	Unusable  int // directories the walker skipped
	Config    int // config problems
}

// Report is the result of Check.
type Report struct {
	Issues []Issue
	Stats  IssueStats
}
