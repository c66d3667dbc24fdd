package home

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeFeed)
	r.Get("/list", h.ServeList)
	r.Get("/list.csv", h.ServeExport)
	r.Get("/clear", h.HandleClear)
	return r
}
