// internal/app/features/persona/routes.go
package persona

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the persona switcher under /persona.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeViewer)
	r.Post("/", h.HandleSwitch)
	return r
}
