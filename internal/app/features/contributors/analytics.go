// internal/app/features/contributors/analytics.go
package contributors

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/dalemusser/casehub/internal/app/system/analytics"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type barVM struct {
	ID       string
	Name     string
	Cases    int
	Stars    int
	Percent  int
	Selected bool
	URL      string
}

type pointVM struct {
	Label         string
	Year          int
	Contributions int
	Stars         int
	Percent       int
}

type analyticsData struct {
	viewdata.BaseVM
	Bars         []barVM
	Selected     *rosterRow
	Series       []pointVM
	StarsPerCase string
	SeriesTotal  int
}

func percent(n, top int) int {
	if top <= 0 {
		return 0
	}
	return n * 100 / top
}

// ServeAnalytics compares the top contributors by case count and charts
// the selected contributor's last twelve months. The selection comes from
// the URL, falling back to the leader.
func (h *Handler) ServeAnalytics(w http.ResponseWriter, r *http.Request) {
	selectedID := chi.URLParam(r, "id")
	if selectedID == "" {
		selectedID = r.URL.Query().Get("contributor")
	}

	data := analyticsData{BaseVM: viewdata.NewBaseVM(r, "Contributor analytics", "/contributors")}
	if err := h.read(r, func(st *hub.State) error {
		roster := st.ContributorRoster()
		bars := analytics.ContributorBars(roster, selectedID)
		if selectedID == "" && len(bars) > 0 {
			selectedID = bars[0].Contributor.ID
			bars = analytics.ContributorBars(roster, selectedID)
		}

		most := 0
		for _, b := range bars {
			most = max(most, b.Contributor.CaseCount)
		}
		for _, b := range bars {
			data.Bars = append(data.Bars, barVM{
				ID:       b.Contributor.ID,
				Name:     b.Contributor.Name,
				Cases:    b.Contributor.CaseCount,
				Stars:    b.Contributor.TotalStars,
				Percent:  percent(b.Contributor.CaseCount, most),
				Selected: b.Selected,
				URL:      "/contributors/" + url.PathEscape(b.Contributor.ID) + "/analytics",
			})
		}

		var sel *models.Contributor
		for i := range roster {
			if roster[i].ID == selectedID {
				sel = &roster[i]
			}
		}
		if sel != nil {
			row := newRosterRow(*sel, 0, st.Catalog)
			data.Selected = &row
			data.StarsPerCase = fmt.Sprintf("%.1f", analytics.StarsPerCase(*sel))

			series := analytics.MonthlySeries(sel.Name, st.Cases.All(), st.Now())
			peak := 0
			for _, p := range series {
				peak = max(peak, p.Contributions)
			}
			for _, p := range series {
				data.SeriesTotal += p.Contributions
				data.Series = append(data.Series, pointVM{
					Label:         p.Label,
					Year:          p.Year,
					Contributions: p.Contributions,
					Stars:         p.Stars,
					Percent:       percent(p.Contributions, peak),
				})
			}
		}
		data.Sidebar = viewdata.BuildSidebar(st)
		return nil
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "load analytics failed", err, "Could not load analytics.", "/contributors")
		return
	}
	templates.Render(w, r, "contributor_analytics", data)
}
