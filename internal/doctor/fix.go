package doctor

import (
	"github.com/raphi011/prog/internal/database"
)

// Fix applies the fixable issues to db. It returns the number applied and
// the issues whose fix failed. The caller saves db.
func Fix(db *database.Database, issues []Issue) (fixed int, failed []Issue) {
	for _, issue := range issues {
		switch issue.Fix {
		case FixRemove:
			if db.Remove(issue.Path) {
				fixed++
			}
		case FixUpdate, FixAdd:
			if err := db.Store().Insert(issue.Record); err != nil {
				issue.Description = err.Error()
				failed = append(failed, issue)
				continue
			}
			fixed++
		}
	}
	return fixed, failed
}
