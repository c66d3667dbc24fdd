package dashboard

import (
	"testing"

	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/testutil"
)

func TestPanels(t *testing.T) {
	f := testutil.NewFixtures(t)

	f.Do(func(st *hub.State) error {
		m := contributorPanel(st, "Current User")
		if len(m.Pending) != 1 || len(m.Returned) != 1 {
			t.Errorf("Current User panel: pending %d returned %d", len(m.Pending), len(m.Returned))
		}
		if len(m.Returned) == 1 && m.Returned[0].RejectionReason == "" {
			t.Error("returned case has no reason")
		}

		rv := reviewerPanel(st, auth.RoleDirector)
		if rv.Waiting != 1 || rv.QueueURL != "/approvals/director" {
			t.Errorf("director panel = %+v", rv)
		}

		d := buildDashboard(st)
		if len(d.Figures) == 0 || d.Figures[0].Value != "9" {
			t.Errorf("figures = %+v", d.Figures)
		}
		if len(d.MostViewed) != 5 || len(d.TopContributors) != 5 {
			t.Errorf("top lists: %d viewed, %d contributors", len(d.MostViewed), len(d.TopContributors))
		}
		if len(d.Departments) == 0 || d.Departments[0].Percent != 100 {
			t.Errorf("departments = %+v", d.Departments)
		}
		return nil
	})
}
