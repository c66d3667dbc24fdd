// internal/app/features/dashboard/common.go
package dashboard

import (
	"net/url"

	"github.com/dalemusser/casehub/internal/app/system/analytics"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/casehub/internal/domain/models"
)

// figure is one headline tile.
type figure struct {
	Label string
	Value string
}

type caseRow struct {
	ID     string
	Title  string
	Author string
	Value  string
}

type contributorRow struct {
	ID     string
	Name   string
	Avatar string
	Cases  int
	Stars  int
}

type departmentRow struct {
	Name          string
	Contributions int
	Percent       int
	FilterURL     string
}

type categoryRow struct {
	Name      string
	Color     string
	Cases     int
	Percent   int
	FilterURL string
}

// dashboardData is shared by every persona.
type dashboardData struct {
	viewdata.BaseVM

	Figures         []figure
	MostViewed      []caseRow
	MostLiked       []caseRow
	TopContributors []contributorRow
	Departments     []departmentRow
	Categories      []categoryRow

	// Exactly one of these is set.
	Mine   *mine
	Review *review
}

func buildDashboard(st *hub.State) dashboardData {
	d := analytics.BuildDashboard(st.Cases.All(), st.ContributorRoster(), st.Catalog.ListDepartments(""), st.Catalog.ListCategories())

	out := dashboardData{
		Figures: []figure{
			{"Cases", analytics.FormatCount(d.Totals.Cases)},
			{"Views", analytics.FormatCount(d.Totals.Views)},
			{"Likes", analytics.FormatCount(d.Totals.Likes)},
			{"Comments", analytics.FormatCount(d.Totals.Comments)},
			{"Favorites", analytics.FormatCount(d.Totals.Favorites)},
			{"Saved", analytics.FormatCount(d.Totals.Saved)},
			{"Average stars", d.Totals.AverageStars},
		},
		MostViewed: caseRows(d.MostViewed, func(c models.Case) int { return c.Views }),
		MostLiked:  caseRows(d.MostLiked, func(c models.Case) int { return c.Likes.Count }),
	}
	for _, c := range d.TopContributors {
		out.TopContributors = append(out.TopContributors, contributorRow{
			ID: c.ID, Name: c.Name, Avatar: c.Avatar, Cases: c.CaseCount, Stars: c.TotalStars,
		})
	}

	most := 0
	for _, dep := range d.Departments {
		most = max(most, dep.Contributions)
	}
	for _, dep := range d.Departments {
		pct := 0
		if most > 0 {
			pct = dep.Contributions * 100 / most
		}
		q := url.Values{"department": {dep.ID}}
		if dept, ok := st.Catalog.Department(dep.ID); ok {
			q.Set("division", dept.DivisionID)
		}
		out.Departments = append(out.Departments, departmentRow{
			Name:          dep.Name,
			Contributions: dep.Contributions,
			Percent:       pct,
			FilterURL:     "/?" + q.Encode(),
		})
	}
	for _, c := range d.Categories {
		out.Categories = append(out.Categories, categoryRow{
			Name:      c.Category.Name,
			Color:     c.Category.Color,
			Cases:     c.Cases,
			Percent:   c.Percent,
			FilterURL: "/?category=" + url.QueryEscape(c.Category.ID),
		})
	}
	return out
}

func caseRows(cs []models.Case, metric func(models.Case) int) []caseRow {
	out := make([]caseRow, 0, len(cs))
	for _, c := range cs {
		out = append(out, caseRow{
			ID:     c.ID,
			Title:  c.Title,
			Author: c.Author.Name,
			Value:  analytics.FormatCount(metric(c)),
		})
	}
	return out
}
