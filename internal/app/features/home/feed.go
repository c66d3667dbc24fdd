// internal/app/features/home/feed.go
package home

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/casehub/internal/app/system/casefilter"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/paging"
	"github.com/dalemusser/casehub/internal/app/system/shortcuts"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type option struct {
	ID       string
	Name     string
	Selected bool
}

// filterBar is the search box and filter selects shown above the feed and
// the list.
type filterBar struct {
	Action      string
	Search      string
	SavedOnly   bool
	Active      int
	Categories  []option
	Divisions   []option
	Departments []option
	Sections    []option

	ClearURL      string
	SavedURL      string
	AlternateURL  string
	AlternateName string
}

type feedData struct {
	viewdata.BaseVM
	Filters filterBar
	Heading string
	Cards   []viewdata.CaseCard
	Total   int
}

type listData struct {
	viewdata.BaseVM
	Filters   filterBar
	Heading   string
	Cards     []viewdata.CaseCard
	Range     paging.Range
	PrevURL   string
	NextURL   string
	ExportURL string
}

func withQuery(path string, v url.Values) string {
	if q := v.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

// buildFilterBar fills the filter choices for crit. Departments are narrowed
// to the chosen division and sections to the chosen department.
func buildFilterBar(st *hub.State, crit casefilter.Criteria, path string) filterBar {
	fb := filterBar{
		Action:    path,
		Search:    crit.Search,
		SavedOnly: crit.SavedOnly,
		Active:    crit.ActiveCount(),
	}
	for _, c := range st.Catalog.ListCategories() {
		fb.Categories = append(fb.Categories, option{ID: c.ID, Name: c.Name, Selected: c.ID == crit.CategoryID})
	}
	for _, d := range st.Catalog.ListDivisions() {
		fb.Divisions = append(fb.Divisions, option{ID: d.ID, Name: d.Name, Selected: d.ID == crit.DivisionID})
	}
	if crit.DivisionID != "" {
		for _, d := range st.Catalog.ListDepartments(crit.DivisionID) {
			fb.Departments = append(fb.Departments, option{ID: d.ID, Name: d.Name, Selected: d.ID == crit.DepartmentID})
		}
	}
	if crit.DepartmentID != "" {
		for _, s := range st.Catalog.ListSections(crit.DepartmentID) {
			fb.Sections = append(fb.Sections, option{ID: s.ID, Name: s.Name, Selected: s.ID == crit.SectionID})
		}
	}

	cleared := crit.Values()
	if path == "/list" {
		cleared.Set("view", "list")
	}
	fb.ClearURL = withQuery("/clear", cleared)

	toggled := crit
	toggled.SavedOnly = !crit.SavedOnly
	fb.SavedURL = withQuery(path, toggled.Values())

	if path == "/list" {
		fb.AlternateURL, fb.AlternateName = withQuery("/", crit.Values()), "Feed view"
	} else {
		fb.AlternateURL, fb.AlternateName = withQuery("/list", crit.Values()), "List view"
	}
	return fb
}

// heading names the narrowest active placement or category filter.
func heading(st *hub.State, crit casefilter.Criteria) string {
	if s, ok := st.Catalog.Section(crit.SectionID); ok {
		return s.Name
	}
	if d, ok := st.Catalog.Department(crit.DepartmentID); ok {
		return d.Name
	}
	if d, ok := st.Catalog.Division(crit.DivisionID); ok {
		return d.Name
	}
	if c, ok := st.Catalog.Category(crit.CategoryID); ok {
		return c.Name
	}
	if crit.SavedOnly {
		return "Saved cases"
	}
	return "Knowledge feed"
}

// ServeFeed shows approved cases matching the query-string filters as cards.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	crit := casefilter.FromValues(r.URL.Query())

	var data feedData
	if err := h.view(r, func(st *hub.State) error {
		matched := casefilter.Apply(st.Cases.All(), crit)
		data = feedData{
			BaseVM:  viewdata.NewBaseVM(r, "Cases", "/"),
			Filters: buildFilterBar(st, crit, "/"),
			Heading: heading(st, crit),
			Cards:   viewdata.CaseCards(matched, st.Catalog),
			Total:   len(matched),
		}
		data.Sidebar = viewdata.BuildSidebar(st)
		return nil
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "load feed failed", err, "Could not load cases.", "/")
		return
	}
	templates.Render(w, r, "case_feed", data)
}

// ServeList shows the same filtered cases as a paged table.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	crit := casefilter.FromValues(r.URL.Query())
	start := paging.ParseStart(r)

	var data listData
	if err := h.view(r, func(st *hub.State) error {
		matched := casefilter.Apply(st.Cases.All(), crit)
		page, rng := paging.Page(matched, start, paging.PageSize)
		data = listData{
			BaseVM:  viewdata.NewBaseVM(r, "Case list", "/list"),
			Filters: buildFilterBar(st, crit, "/list"),
			Heading: heading(st, crit),
			Cards:   viewdata.CaseCards(page, st.Catalog),
			Range:   rng,
		}
		data.Sidebar = viewdata.BuildSidebar(st)
		return nil
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "load list failed", err, "Could not load cases.", "/")
		return
	}

	v := crit.Values()
	data.ExportURL = withQuery("/list.csv", v)
	if data.Range.HasPrev {
		v.Set("start", strconv.Itoa(data.Range.PrevStart))
		data.PrevURL = withQuery("/list", v)
	}
	if data.Range.HasNext {
		v.Set("start", strconv.Itoa(data.Range.NextStart))
		data.NextURL = withQuery("/list", v)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "case-table-wrap" {
		templates.RenderSnippet(w, "case_table", data)
		return
	}
	templates.Render(w, r, "case_list", data)
}

// HandleClear drops every filter and reports how many were removed. The
// filters to count arrive as the query string of the link.
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	crit := casefilter.FromValues(r.URL.Query())
	dest := "/"
	if r.URL.Query().Get("view") == "list" {
		dest = "/list"
	}
	if n := crit.ActiveCount(); n > 0 && h.Sessions != nil {
		if err := h.Sessions.AddNotice(w, r, shortcuts.ClearedMessage(n)); err != nil {
			h.Log.Warn("add notice failed", zap.Error(err))
		}
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
