// Package static renders non-interactive terminal output such as the
// list --table view.
package static

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/prog/internal/format"
	"github.com/raphi011/prog/internal/index"
	"github.com/raphi011/prog/internal/ui/styles"
)

// RecordHeaders are the columns of RecordTableRow.
var RecordHeaders = []string{"REPO", "OWNER", "HOST", "PATH", "UPDATED"}

// RecordTableRow formats rec for RenderTable. Paths that no longer exist
// on disk get the missing marker so users know a sync is due.
func RecordTableRow(rec index.Record, now time.Time, exists bool) []string {
	path := rec.FullPath
	if !exists {
		path = styles.WarningStyle.Render(styles.CurrentSymbols().Missing + " " + path)
	}
	return []string{
		rec.Repo,
		rec.Owner,
		rec.Host,
		path,
		format.RelativeTimeFrom(rec.UpdatedAt, now),
	}
}

// RenderTable lays out headers and rows with lipgloss/table. Column widths
// follow the content and no borders are drawn.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	var output strings.Builder
	output.WriteString(t.String())
	output.WriteString("\n")
	return output.String()
}
