// internal/app/features/cases/view.go
package cases

import (
	"html/template"
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/metrics"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type commentVM struct {
	ID        string
	Author    string
	Avatar    string
	Initials  string
	Body      string
	Timestamp string
	Likes     int
	Liked     bool
}

type viewData struct {
	viewdata.BaseVM

	Case         viewdata.CaseCard
	Body         template.HTML
	RootCause    string
	Solution     template.HTML
	ShowSolution bool
	Attachments  []attachmentVM
	Comments     []commentVM

	// Preview is set when rendering unsaved editor content; actions are
	// hidden.
	Preview bool

	EditURL   string
	DeleteURL string
	// Return is passed to action forms so they land back on this page.
	Return string
	// CachedURL reopens the case without counting a view.
	CachedURL string
}

// buildView assembles the case page for c. Call it inside a hub command.
func buildView(r *http.Request, st *hub.State, c models.Case) viewData {
	d := viewData{
		BaseVM:      viewdata.NewBaseVM(r, c.Title, "/"),
		Case:        viewdata.NewCaseCard(c, st.Catalog),
		Body:        htmlsanitize.Markdown(c.Body),
		RootCause:   c.RootCause,
		Attachments: toAttachmentVMs(c.Attachments),
	}
	if c.IsTroubleshooting() && c.Solution != "" {
		d.ShowSolution = true
		d.Solution = htmlsanitize.Markdown(c.Solution)
	}
	for _, cm := range c.Comments {
		d.Comments = append(d.Comments, commentVM{
			ID:        cm.ID,
			Author:    cm.Author.Name,
			Avatar:    cm.Author.Avatar,
			Initials:  cm.Author.Initials(),
			Body:      cm.Body,
			Timestamp: cm.Timestamp,
			Likes:     cm.Likes.Count,
			Liked:     cm.Likes.On,
		})
	}
	if c.ID != "" {
		base := "/cases/" + url.PathEscape(c.ID)
		d.EditURL = base + "/edit"
		d.DeleteURL = base + "/delete"
		d.CachedURL = base + "?ref=cached"
		d.Return = d.CachedURL
	}
	d.Sidebar = viewdata.BuildSidebar(st)
	return d
}

func renderView(w http.ResponseWriter, r *http.Request, d viewData) {
	templates.Render(w, r, "case_view", d)
}

// ServeView shows one case. Opening it counts a view and promotes it in the
// recently viewed list, unless the link carries ref=cached.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fresh := r.URL.Query().Get("ref") != "cached"

	var d viewData
	err := h.write(r, func(st *hub.State) error {
		if fresh {
			if _, err := st.Social.RecordView(id); err != nil {
				return err
			}
		}
		c, err := st.Cases.FindByID(id)
		if err != nil {
			return err
		}
		d = buildView(r, st, c)
		return nil
	})
	if isNotFound(err) {
		uierrors.RenderNotFound(w, r, "Case not found.", httpnav.ResolveBackURL(r, "/"))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load case failed", err, "Could not load the case.", "/")
		return
	}
	if fresh {
		metrics.CaseViews.Inc()
	}
	renderView(w, r, d)
}
