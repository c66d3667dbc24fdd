// internal/app/features/catalog/routes.go
package catalog

import "github.com/go-chi/chi/v5"

// Routes mounts the catalog lookups under /catalog.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/divisions", h.ServeDivisions)
	r.Get("/departments", h.ServeDepartments)
	r.Get("/sections", h.ServeSections)
	r.Get("/categories", h.ServeCategories)
	return r
}
