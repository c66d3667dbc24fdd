// internal/app/features/contributors/list.go
package contributors

import (
	"net/http"
	"net/url"

	catalogstore "github.com/dalemusser/casehub/internal/app/store/catalog"
	"github.com/dalemusser/casehub/internal/app/system/contributorstats"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// rosterRow is one contributor card on the roster page.
type rosterRow struct {
	ID        string
	Name      string
	Avatar    string
	Initials  string
	Placement string
	Cases     int
	Stars     int
	Followed  bool
	JoinDate  string
	Rank      int
	URL       string
	FollowURL string
}

type listData struct {
	viewdata.BaseVM
	Rows []rosterRow
}

func newRosterRow(c models.Contributor, rank int, cat *catalogstore.Store) rosterRow {
	base := "/contributors/" + url.PathEscape(c.ID)
	return rosterRow{
		ID:        c.ID,
		Name:      c.Name,
		Avatar:    c.Avatar,
		Initials:  c.AsAuthor().Initials(),
		Placement: viewdata.PlacementLabel(cat, c.DivisionID, c.DepartmentID, c.SectionID),
		Cases:     c.CaseCount,
		Stars:     c.TotalStars,
		Followed:  c.Followed,
		JoinDate:  c.JoinDate,
		Rank:      rank,
		URL:       base,
		FollowURL: base + "/follow",
	}
}

// ServeList shows the roster ordered by total stars.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data := listData{BaseVM: viewdata.NewBaseVM(r, "Contributors", "/")}
	if err := h.read(r, func(st *hub.State) error {
		for i, c := range contributorstats.Sorted(st.ContributorRoster(), contributorstats.ByStars) {
			data.Rows = append(data.Rows, newRosterRow(c, i+1, st.Catalog))
		}
		data.Sidebar = viewdata.BuildSidebar(st)
		return nil
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "load contributors failed", err, "Could not load contributors.", "/")
		return
	}
	templates.Render(w, r, "contributor_list", data)
}
