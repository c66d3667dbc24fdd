// internal/app/features/approvals/routes.go
package approvals

import (
	"github.com/dalemusser/casehub/internal/app/system/approval"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the review queues (typically at "/approvals"). Each queue
// is open only to its reviewer persona.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeIndex)

	r.Route("/manager", func(r chi.Router) {
		r.Use(authz.RequireRole(auth.RoleManager))
		h.stageRoutes(r, approval.StageManager)
	})
	r.Route("/director", func(r chi.Router) {
		r.Use(authz.RequireRole(auth.RoleDirector))
		h.stageRoutes(r, approval.StageDirector)
	})
	return r
}

func (h *Handler) stageRoutes(r chi.Router, stage approval.Stage) {
	r.Get("/", h.ServeQueue(stage))
	r.Post("/{id}/approve", h.HandleApprove(stage))
	r.Post("/{id}/reject", h.HandleReject(stage))
}
