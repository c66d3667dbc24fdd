// internal/app/system/analytics/dashboard.go
package analytics

import (
	"math"
	"sort"
	"strconv"

	"github.com/dalemusser/casehub/internal/app/system/contributorstats"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dustin/go-humanize"
)

// Dashboard list sizes.
const (
	TopCases        = 5
	TopContributors = 5
	TopDepartments  = 15
)

// Totals are the headline figures across every case.
type Totals struct {
	Cases     int
	Views     int
	Likes     int
	Comments  int
	Favorites int
	Saved     int
	// AverageStars is formatted to one decimal place, or "0" with no cases.
	AverageStars string
}

// DepartmentShare is one bar of the department contributions chart.
type DepartmentShare struct {
	ID            string
	Name          string
	Contributions int
}

// CategoryShare is one row of the category distribution.
type CategoryShare struct {
	Category models.Category
	Cases    int
	Percent  int
}

// Dashboard is everything the dashboard page shows.
type Dashboard struct {
	Totals          Totals
	MostViewed      []models.Case
	MostLiked       []models.Case
	TopContributors []models.Contributor
	Departments     []DepartmentShare
	Categories      []CategoryShare
}

// BuildDashboard aggregates the live collections.
func BuildDashboard(cases []models.Case, contributors []models.Contributor, departments []models.Department, categories []models.Category) Dashboard {
	return Dashboard{
		Totals:          ComputeTotals(cases),
		MostViewed:      topCases(cases, func(c models.Case) int { return c.Views }, TopCases),
		MostLiked:       topCases(cases, func(c models.Case) int { return c.Likes.Count }, TopCases),
		TopContributors: contributorstats.Top(contributors, contributorstats.ByCaseCount, TopContributors),
		Departments:     DepartmentContributions(cases, departments, TopDepartments),
		Categories:      CategoryDistribution(cases, categories),
	}
}

// ComputeTotals sums engagement across cases.
func ComputeTotals(cases []models.Case) Totals {
	var t Totals
	stars := 0
	for i := range cases {
		c := &cases[i]
		t.Cases++
		t.Views += c.Views
		t.Likes += c.Likes.Count
		t.Comments += len(c.Comments)
		if c.Favorite {
			t.Favorites++
		}
		if c.Saved {
			t.Saved++
		}
		stars += c.Stars
	}
	t.AverageStars = "0"
	if t.Cases > 0 {
		t.AverageStars = strconv.FormatFloat(float64(stars)/float64(t.Cases), 'f', 1, 64)
	}
	return t
}

// FormatCount renders large figures with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

func topCases(cases []models.Case, key func(models.Case) int, n int) []models.Case {
	out := append([]models.Case(nil), cases...)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// DepartmentContributions counts cases per department, drops departments
// with none and keeps the n largest.
func DepartmentContributions(cases []models.Case, departments []models.Department, n int) []DepartmentShare {
	counts := make(map[string]int, len(departments))
	for i := range cases {
		counts[cases[i].DepartmentID]++
	}
	var out []DepartmentShare
	for _, d := range departments {
		if c := counts[d.ID]; c > 0 {
			out = append(out, DepartmentShare{ID: d.ID, Name: d.Name, Contributions: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Contributions > out[j].Contributions })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// CategoryDistribution reports each category's share of all cases, as a
// whole percentage.
func CategoryDistribution(cases []models.Case, categories []models.Category) []CategoryShare {
	counts := make(map[string]int, len(categories))
	for i := range cases {
		counts[cases[i].Category.ID]++
	}
	out := make([]CategoryShare, 0, len(categories))
	for _, cat := range categories {
		share := CategoryShare{Category: cat, Cases: counts[cat.ID]}
		if len(cases) > 0 {
			share.Percent = int(math.Round(float64(share.Cases) * 100 / float64(len(cases))))
		}
		out = append(out, share)
	}
	return out
}
