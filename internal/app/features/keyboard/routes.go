// internal/app/features/keyboard/routes.go
package keyboard

import "github.com/go-chi/chi/v5"

// Routes mounts the shortcut endpoints under /shortcuts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeHelp)
	r.Post("/", h.HandleKey)
	return r
}
