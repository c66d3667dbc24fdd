// internal/app/system/contributorstats/contributorstats.go
package contributorstats

import (
	"sort"

	"github.com/dalemusser/casehub/internal/domain/models"
)

// Stats summarizes one author's cases.
type Stats struct {
	CaseCount    int
	AverageStars float64
	TotalViews   int
	TotalLikes   int
	TotalStars   int
}

// StatsFor aggregates the cases whose author name equals author exactly.
// AverageStars is 0 when the author has no cases.
func StatsFor(author string, cases []models.Case) Stats {
	var st Stats
	for i := range cases {
		c := &cases[i]
		if c.Author.Name != author {
			continue
		}
		st.CaseCount++
		st.TotalStars += c.Stars
		st.TotalViews += c.Views
		st.TotalLikes += c.Likes.Count
	}
	if st.CaseCount > 0 {
		st.AverageStars = float64(st.TotalStars) / float64(st.CaseCount)
	}
	return st
}

// Metric selects the leaderboard ordering.
type Metric string

const (
	ByCaseCount Metric = "cases"
	ByStars     Metric = "stars"
)

func value(c models.Contributor, m Metric) int {
	if m == ByStars {
		return c.TotalStars
	}
	return c.CaseCount
}

// Sorted returns a copy of all ordered by m, highest first. Ties keep roster
// order.
func Sorted(all []models.Contributor, m Metric) []models.Contributor {
	out := append([]models.Contributor(nil), all...)
	sort.SliceStable(out, func(i, j int) bool {
		return value(out[i], m) > value(out[j], m)
	})
	return out
}

// Top returns at most n contributors ordered by m.
func Top(all []models.Contributor, m Metric, n int) []models.Contributor {
	out := Sorted(all, m)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Rank returns the 1-based leaderboard position of the contributor with id
// targetID, or 0 when it is not on the roster.
func Rank(targetID string, all []models.Contributor, m Metric) int {
	for i, c := range Sorted(all, m) {
		if c.ID == targetID {
			return i + 1
		}
	}
	return 0
}

// Refresh recomputes CaseCount and TotalStars for every contributor from
// the live case collection and returns the updated roster. Authors are
// matched by name.
func Refresh(contributors []models.Contributor, cases []models.Case) []models.Contributor {
	type agg struct{ count, stars int }
	byName := make(map[string]agg, len(contributors))
	for i := range cases {
		a := byName[cases[i].Author.Name]
		a.count++
		a.stars += cases[i].Stars
		byName[cases[i].Author.Name] = a
	}
	out := make([]models.Contributor, len(contributors))
	for i, c := range contributors {
		a := byName[c.Name]
		c.CaseCount = a.count
		c.TotalStars = a.stars
		out[i] = c
	}
	return out
}
