package doctor

import (
	"context"
	"fmt"

	"github.com/raphi011/prog/internal/config"
	"github.com/raphi011/prog/internal/database"
	"github.com/raphi011/prog/internal/output"
	"github.com/raphi011/prog/internal/scan"
	"github.com/raphi011/prog/internal/ui/styles"
)

// Run checks the index, prints a summary and, with fix, repairs and saves it.
func Run(ctx context.Context, cfg *config.Config, db *database.Database, w *scan.Walker, fix bool) error {
	out := output.FromContext(ctx)

	out.Println("Checking base directories and index...")
	report, err := Check(ctx, cfg, db, w)
	if err != nil {
		return err
	}

	printSummary(out, db.Len(), report.Stats)

	if len(report.Issues) == 0 {
		out.Println("\n" + styles.SuccessStyle.Render("✓ No issues found"))
		return nil
	}

	out.Printf("\nFound %d issues:\n", len(report.Issues))
	printIssuesByCategory(out, report.Issues)

	if !fix {
		out.Println("\nRun 'prog doctor --fix' to repair.")
		return nil
	}

	fixed, failed := Fix(db, report.Issues)
	for _, issue := range failed {
		out.Printf("  %s Failed to fix %s: %s\n", styles.ErrorStyle.Render("✗"), issue.Path, issue.Description)
	}
	if fixed > 0 {
		if err := db.Save(ctx); err != nil {
			return fmt.Errorf("save index: %w", err)
		}
	}
	out.Printf("\nFixed %d issues\n", fixed)
	if manual := len(report.Issues) - fixed - len(failed); manual > 0 {
		out.Printf("%d issues need manual attention\n", manual)
	}
	return nil
}

func printSummary(out *output.Printer, total int, stats IssueStats) {
	ok := styles.SuccessStyle.Render("✓")
	warn := styles.WarningStyle.Render("⚠")

	out.Println()
	out.Printf("  %s %d of %d indexed repositories healthy\n", ok, stats.Healthy, total)
	if stats.Stale > 0 {
		out.Printf("  %s %d stale records\n", warn, stats.Stale)
	}
	if stats.Changed > 0 {
		out.Printf("  %s %d changed origins\n", warn, stats.Changed)
	}
	if stats.Untracked > 0 {
		out.Printf("  %s %d repositories not indexed\n", warn, stats.Untracked)
	}
	if stats.Unusable > 0 {
		out.Printf("  %s %d directories skipped by sync\n", warn, stats.Unusable)
	}
	if stats.Config > 0 {
		out.Printf("  %s %d config problems\n", styles.ErrorStyle.Render("✗"), stats.Config)
	}
}

func printIssuesByCategory(out *output.Printer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryConfig: "Config issues",
		CategoryIndex:  "Index issues",
		CategoryOrphan: "Orphan issues",
	}

	for _, cat := range []IssueCategory{CategoryConfig, CategoryIndex, CategoryOrphan} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		out.Printf("\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			out.Printf("  • %s: %s\n", issue.Path, issue.Description)
		}
	}
}
