package analytics_test

import (
	"testing"
	"time"

	"github.com/dalemusser/casehub/internal/app/system/analytics"
	"github.com/dalemusser/casehub/internal/domain/models"
)

func TestComputeTotals(t *testing.T) {
	cases := []models.Case{
		{Views: 10, Likes: models.Toggle{Count: 2}, Stars: 5, Favorite: true, Comments: []models.Comment{{}, {}}},
		{Views: 5, Likes: models.Toggle{Count: 1}, Stars: 4, Saved: true},
		{Views: 0, Stars: 4},
	}
	got := analytics.ComputeTotals(cases)

	if got.Cases != 3 || got.Views != 15 || got.Likes != 3 || got.Comments != 2 || got.Favorites != 1 || got.Saved != 1 {
		t.Errorf("unexpected totals: %+v", got)
	}
	if got.AverageStars != "4.3" {
		t.Errorf("average: got %q, want 4.3", got.AverageStars)
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	if got := analytics.ComputeTotals(nil); got.AverageStars != "0" {
		t.Errorf("average: got %q, want 0", got.AverageStars)
	}
}

func TestDepartmentContributions(t *testing.T) {
	depts := []models.Department{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
	cases := []models.Case{{DepartmentID: "b"}, {DepartmentID: "b"}, {DepartmentID: "a"}}

	got := analytics.DepartmentContributions(cases, depts, 15)
	if len(got) != 2 {
		t.Fatalf("expected zero-count departments dropped, got %+v", got)
	}
	if got[0].ID != "b" || got[0].Contributions != 2 || got[1].ID != "a" {
		t.Errorf("unexpected order: %+v", got)
	}
	if n := len(analytics.DepartmentContributions(cases, depts, 1)); n != 1 {
		t.Errorf("limit not applied: %d", n)
	}
}

func TestCategoryDistribution(t *testing.T) {
	cats := []models.Category{{ID: "1"}, {ID: "2"}}
	cases := []models.Case{
		{Category: models.CategoryRef{ID: "1"}},
		{Category: models.CategoryRef{ID: "1"}},
		{Category: models.CategoryRef{ID: "2"}},
	}
	got := analytics.CategoryDistribution(cases, cats)
	if got[0].Cases != 2 || got[0].Percent != 67 || got[1].Percent != 33 {
		t.Errorf("unexpected distribution: %+v", got)
	}

	empty := analytics.CategoryDistribution(nil, cats)
	if empty[0].Percent != 0 {
		t.Error("expected 0% with no cases")
	}
}

func TestBuildDashboard_TopLists(t *testing.T) {
	var cases []models.Case
	for i := 0; i < 7; i++ {
		cases = append(cases, models.Case{ID: string(rune('a' + i)), Views: i, Likes: models.Toggle{Count: 10 - i}})
	}
	d := analytics.BuildDashboard(cases, nil, nil, nil)

	if len(d.MostViewed) != analytics.TopCases || d.MostViewed[0].ID != "g" {
		t.Errorf("most viewed: %+v", d.MostViewed)
	}
	if len(d.MostLiked) != analytics.TopCases || d.MostLiked[0].ID != "a" {
		t.Errorf("most liked: %+v", d.MostLiked)
	}
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	at := func(y int, m time.Month) int64 { return time.Date(y, m, 10, 0, 0, 0, 0, time.UTC).UnixMilli() }
	cases := []models.Case{
		{Author: models.Author{Name: "A"}, CreatedAt: at(2026, 3), Stars: 5},
		{Author: models.Author{Name: "A"}, CreatedAt: at(2026, 3), Stars: 3},
		{Author: models.Author{Name: "A"}, CreatedAt: at(2025, 4), Stars: 4},
		{Author: models.Author{Name: "A"}, CreatedAt: at(2025, 3), Stars: 1}, // outside window
		{Author: models.Author{Name: "B"}, CreatedAt: at(2026, 3), Stars: 2},
	}

	got := analytics.MonthlySeries("A", cases, now)
	if len(got) != analytics.SeriesMonths {
		t.Fatalf("len: got %d", len(got))
	}
	if got[0].Label != "Apr" || got[0].Year != 2025 || got[0].Contributions != 1 {
		t.Errorf("first point: %+v", got[0])
	}
	last := got[len(got)-1]
	if last.Label != "Mar" || last.Contributions != 2 || last.Stars != 8 {
		t.Errorf("last point: %+v", last)
	}
}

func TestContributorBarsAndStarsPerCase(t *testing.T) {
	all := []models.Contributor{{ID: "1", CaseCount: 1}, {ID: "2", CaseCount: 9, TotalStars: 18}}
	bars := analytics.ContributorBars(all, "1")
	if bars[0].Contributor.ID != "2" || bars[0].Selected || !bars[1].Selected {
		t.Errorf("unexpected bars: %+v", bars)
	}
	if got := analytics.StarsPerCase(all[1]); got != 2 {
		t.Errorf("stars per case: got %v", got)
	}
	if got := analytics.StarsPerCase(models.Contributor{}); got != 0 {
		t.Errorf("zero cases: got %v", got)
	}
}

func TestFormatCount(t *testing.T) {
	if got := analytics.FormatCount(1234567); got != "1,234,567" {
		t.Errorf("got %q", got)
	}
}
