// internal/app/features/persona/handler.go
package persona

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/navigation"
	"go.uber.org/zap"
)

// Handler switches the viewer between the contributor, manager and
// director personas and reports the current one.
type Handler struct {
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

// NewHandler creates a new persona handler.
func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sm, Log: logger}
}

// ServeViewer returns JSON describing the current viewer.
//
// Response format:
//
//	{ "name": "...", "role": "manager", "role_label": "Manager", "can_review": true,
//	  "division_id": "...", "department_id": "...", "section_id": "..." }
func (h *Handler) ServeViewer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	v := auth.CurrentViewer(r)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"name":          v.Name,
		"avatar":        v.Avatar,
		"role":          v.Role,
		"role_label":    v.Role.Label(),
		"can_review":    v.CanReview(),
		"division_id":   v.DivisionID,
		"department_id": v.DepartmentID,
		"section_id":    v.SectionID,
	})
}

// HandleSwitch stores the posted persona. Reviewers land on their queue;
// contributors go back where they came from.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	role, ok := auth.ParseRole(r.FormValue("role"))
	if !ok {
		http.Error(w, "unknown role", http.StatusBadRequest)
		return
	}
	if err := h.Sessions.SetRole(w, r, role); err != nil {
		h.Log.Error("set role failed", zap.Error(err))
		http.Error(w, "could not switch persona", http.StatusInternalServerError)
		return
	}
	if err := h.Sessions.AddNotice(w, r, "Now acting as "+role.Label()); err != nil {
		h.Log.Warn("add notice failed", zap.Error(err))
	}
	h.Log.Debug("persona switched", zap.String("role", string(role)))

	dest := navigation.SafeBackURL(r, navigation.CaseActionBackURL)
	switch role {
	case auth.RoleManager:
		dest = "/approvals/manager"
	case auth.RoleDirector:
		dest = "/approvals/director"
	default:
		// A contributor cannot stay on a review queue.
		if strings.HasPrefix(dest, "/approvals") {
			dest = "/"
		}
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
