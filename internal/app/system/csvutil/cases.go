// internal/app/system/csvutil/cases.go
package csvutil

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/casehub/internal/domain/models"
)

// CaseHeader is the first line of a case export.
var CaseHeader = []string{
	"ID", "Title", "Category", "Status", "Placement", "Author",
	"Keywords", "Views", "Stars", "Likes", "Comments", "Created", "Last Modified",
}

// CaseRow flattens one case. placement is the display path of its
// division, department and section.
func CaseRow(c models.Case, placement string) []string {
	created := ""
	if c.CreatedAt > 0 {
		created = time.UnixMilli(c.CreatedAt).UTC().Format(time.RFC3339)
	}
	return []string{
		c.ID,
		sanitizeCell(c.Title),
		c.Category.Name,
		c.Status.Label(),
		placement,
		sanitizeCell(c.Author.Name),
		sanitizeCell(strings.Join(c.Keywords, "; ")),
		strconv.Itoa(c.Views),
		strconv.Itoa(c.Stars),
		strconv.Itoa(c.Likes.Count),
		strconv.Itoa(len(c.Comments)),
		created,
		c.LastModified,
	}
}

// WriteCases writes the header and one row per case, stopping at MaxRows.
// It returns how many cases were written.
func WriteCases(w io.Writer, cases []models.Case, placement func(models.Case) string) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CaseHeader); err != nil {
		return 0, err
	}
	n := 0
	for _, c := range cases {
		if n == MaxRows {
			break
		}
		if err := cw.Write(CaseRow(c, placement(c))); err != nil {
			return n, err
		}
		n++
	}
	cw.Flush()
	return n, cw.Error()
}

// sanitizeCell prefixes values a spreadsheet would evaluate as a formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
