// internal/app/system/analytics/series.go
package analytics

import (
	"time"

	"github.com/dalemusser/casehub/internal/app/system/contributorstats"
	"github.com/dalemusser/casehub/internal/domain/models"
)

// SeriesMonths is the length of the contribution time series.
const SeriesMonths = 12

// TopAnalytics is how many contributors the comparison chart shows.
const TopAnalytics = 10

// MonthPoint is one month of a contributor's activity.
type MonthPoint struct {
	Label         string // "Jan"
	Year          int
	Contributions int
	Stars         int
}

// MonthlySeries buckets the author's cases by creation month over the
// SeriesMonths months ending with now's month, oldest first.
func MonthlySeries(author string, cases []models.Case, now time.Time) []MonthPoint {
	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(SeriesMonths - 1), 0)

	out := make([]MonthPoint, SeriesMonths)
	for i := range out {
		m := first.AddDate(0, i, 0)
		out[i] = MonthPoint{Label: m.Format("Jan"), Year: m.Year()}
	}
	for i := range cases {
		c := &cases[i]
		if c.Author.Name != author || c.CreatedAt == 0 {
			continue
		}
		t := time.UnixMilli(c.CreatedAt).In(loc)
		idx := (t.Year()-first.Year())*12 + int(t.Month()) - int(first.Month())
		if idx < 0 || idx >= SeriesMonths {
			continue
		}
		out[idx].Contributions++
		out[idx].Stars += c.Stars
	}
	return out
}

// Bar is one contributor in the comparison chart.
type Bar struct {
	Contributor models.Contributor
	Selected    bool
}

// ContributorBars returns the top contributors by case count, flagging the
// one with selectedID.
func ContributorBars(all []models.Contributor, selectedID string) []Bar {
	top := contributorstats.Top(all, contributorstats.ByCaseCount, TopAnalytics)
	out := make([]Bar, len(top))
	for i, c := range top {
		out[i] = Bar{Contributor: c, Selected: c.ID == selectedID}
	}
	return out
}

// StarsPerCase is TotalStars / CaseCount, or 0 without cases.
func StarsPerCase(c models.Contributor) float64 {
	if c.CaseCount == 0 {
		return 0
	}
	return float64(c.TotalStars) / float64(c.CaseCount)
}
