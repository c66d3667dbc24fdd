// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns a chi.Router with audit log routes mounted. Only the
// reviewer personas can read it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authz.RequireRole(auth.RoleManager, auth.RoleDirector))
	r.Get("/", h.ServeList)
	return r
}
