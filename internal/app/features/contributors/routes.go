package contributors

import "github.com/go-chi/chi/v5"

// Routes mounts the contributor pages (typically at "/contributors").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/by-author", h.ServeByAuthor)
	r.Get("/analytics", h.ServeAnalytics)
	r.Get("/{id}", h.ServeProfile)
	r.Get("/{id}/analytics", h.ServeAnalytics)
	r.Post("/{id}/follow", h.HandleFollow)
	return r
}
