// internal/app/features/catalog/handler.go
package catalog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// Handler serves the organization catalog as JSON for the editor's
// cascading selects and the filter bar.
type Handler struct {
	Hub *hub.Hub
	Log *zap.Logger
}

func NewHandler(h *hub.Hub, logger *zap.Logger) *Handler {
	return &Handler{Hub: h, Log: logger}
}

// entry is one option in a select.
type entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, what string, fill func(*hub.State) []entry) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var out []entry
	if err := h.Hub.View(ctx, func(st *hub.State) error {
		out = fill(st)
		return nil
	}); err != nil {
		h.Log.Error("catalog read failed", zap.String("list", what), zap.Error(err))
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	if out == nil {
		out = []entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// ServeDivisions handles GET /catalog/divisions.
func (h *Handler) ServeDivisions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, "divisions", func(st *hub.State) []entry {
		var out []entry
		for _, d := range st.Catalog.ListDivisions() {
			out = append(out, entry{ID: d.ID, Name: d.Name})
		}
		return out
	})
}

// ServeDepartments handles GET /catalog/departments?division=ID. Without a
// division every department is listed.
func (h *Handler) ServeDepartments(w http.ResponseWriter, r *http.Request) {
	div := query.Get(r, "division")
	h.writeJSON(w, r, "departments", func(st *hub.State) []entry {
		var out []entry
		for _, d := range st.Catalog.ListDepartments(div) {
			out = append(out, entry{ID: d.ID, Name: d.Name, ParentID: d.DivisionID})
		}
		return out
	})
}

// ServeSections handles GET /catalog/sections?department=ID. An unknown
// department yields an empty list.
func (h *Handler) ServeSections(w http.ResponseWriter, r *http.Request) {
	dept := query.Get(r, "department")
	h.writeJSON(w, r, "sections", func(st *hub.State) []entry {
		var out []entry
		for _, s := range st.Catalog.ListSections(dept) {
			out = append(out, entry{ID: s.ID, Name: s.Name, ParentID: s.DepartmentID})
		}
		return out
	})
}

// ServeCategories handles GET /catalog/categories with the live counts.
func (h *Handler) ServeCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	type category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Count int    `json:"count"`
	}
	out := []category{}
	if err := h.Hub.View(ctx, func(st *hub.State) error {
		for _, c := range st.Catalog.ListCategories() {
			out = append(out, category{ID: c.ID, Name: c.Name, Color: c.Color, Count: c.Count})
		}
		return nil
	}); err != nil {
		h.Log.Error("catalog read failed", zap.String("list", "categories"), zap.Error(err))
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
