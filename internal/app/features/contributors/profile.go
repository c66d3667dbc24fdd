// internal/app/features/contributors/profile.go
package contributors

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	contributorstore "github.com/dalemusser/casehub/internal/app/store/contributors"
	"github.com/dalemusser/casehub/internal/app/system/contributorstats"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/navigation"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type profileData struct {
	viewdata.BaseVM
	Contributor  rosterRow
	Bio          string
	Stats        contributorstats.Stats
	AverageStars string
	StarsRank    int
	CasesRank    int
	RosterSize   int
	Cases        []viewdata.CaseCard
	AnalyticsURL string
}

// ServeProfile shows one contributor with aggregate statistics and their
// cases.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var data profileData
	err := h.read(r, func(st *hub.State) error {
		c, err := st.Contributors.FindByID(id)
		if err != nil {
			return err
		}
		roster := st.ContributorRoster()
		all := st.Cases.All()
		stats := contributorstats.StatsFor(c.Name, all)

		data = profileData{
			BaseVM:       viewdata.NewBaseVM(r, c.Name, "/contributors"),
			Bio:          c.Bio,
			Stats:        stats,
			AverageStars: fmt.Sprintf("%.1f", stats.AverageStars),
			StarsRank:    contributorstats.Rank(c.ID, roster, contributorstats.ByStars),
			CasesRank:    contributorstats.Rank(c.ID, roster, contributorstats.ByCaseCount),
			RosterSize:   len(roster),
			Cases:        viewdata.CaseCards(st.Cases.ByAuthor(c.Name), st.Catalog),
			AnalyticsURL: "/contributors/" + url.PathEscape(c.ID) + "/analytics",
		}
		for _, rc := range roster {
			if rc.ID == c.ID {
				c = rc
			}
		}
		data.Contributor = newRosterRow(c, data.StarsRank, st.Catalog)
		data.Sidebar = viewdata.BuildSidebar(st)
		return nil
	})
	if errors.Is(err, contributorstore.ErrNotFound) {
		uierrors.RenderNotFound(w, r, "Contributor not found.", "/contributors")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load contributor failed", err, "Could not load the contributor.", "/contributors")
		return
	}
	templates.Render(w, r, "contributor_profile", data)
}

// ServeByAuthor resolves an author name (as shown on a case) to the
// roster profile. Names without a roster entry stay on the current page
// with a notice.
func (h *Handler) ServeByAuthor(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	var id string
	err := h.read(r, func(st *hub.State) error {
		c, err := st.Contributors.FindByName(name)
		if err != nil {
			return err
		}
		id = c.ID
		return nil
	})
	if errors.Is(err, contributorstore.ErrNotFound) {
		h.notice(w, r, "No contributor profile for "+name+".")
		http.Redirect(w, r, httpnav.ResolveBackURL(r, "/contributors"), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "lookup contributor failed", err, "Could not load the contributor.", "/contributors")
		return
	}
	http.Redirect(w, r, "/contributors/"+url.PathEscape(id), http.StatusSeeOther)
}

// HandleFollow flips the follow flag on a contributor.
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, navigation.ContributorsBackURL)

	var (
		followed bool
		name     string
	)
	ctx, cancel := writeCtx(r)
	defer cancel()
	err := h.Hub.Do(ctx, func(st *hub.State) error {
		var err error
		if followed, err = st.Contributors.ToggleFollow(id); err != nil {
			return err
		}
		c, _ := st.Contributors.FindByID(id)
		name = c.Name
		return nil
	})
	switch {
	case errors.Is(err, contributorstore.ErrNotFound):
	case err != nil:
		h.ErrLog.LogServerError(w, r, "toggle follow failed", err, "Could not update the contributor.", back)
		return
	case followed:
		h.Log.Debug("contributor followed", zap.String("id", id))
		h.notice(w, r, "Following "+name)
	default:
		h.notice(w, r, "Unfollowed "+name)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
