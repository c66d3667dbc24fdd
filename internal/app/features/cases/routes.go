// internal/app/features/cases/routes.go
package cases

import "github.com/go-chi/chi/v5"

// Routes mounts the case routes under the base path (typically "/cases"
// from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// EDITOR
	r.Get("/new", h.ServeNew)
	r.Post("/", h.HandleCreate)
	r.Post("/preview", h.HandlePreview)
	r.Get("/{id}/edit", h.ServeEdit)
	r.Post("/{id}/edit", h.HandleEdit)
	r.Post("/{id}/delete", h.HandleDelete)

	// VIEW
	r.Get("/{id}", h.ServeView)

	// SOCIAL
	r.Post("/{id}/like", h.HandleLike)
	r.Post("/{id}/save", h.HandleSave)
	r.Post("/{id}/favorite", h.HandleFavorite)
	r.Post("/{id}/comments", h.HandleComment)
	r.Post("/{id}/comments/{commentID}/like", h.HandleCommentLike)

	return r
}

// FileRoutes mounts attachment downloads (typically at "/files").
func FileRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{ref}", h.ServeFile)
	return r
}
