// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Hub    *hub.Hub
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(h *hub.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Hub:    h,
		ErrLog: errLog,
		Log:    logger,
	}
}

// ServeDashboard shows the knowledge-base overview. Every persona sees the
// same figures; the side panel depends on the persona.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	v := auth.CurrentViewer(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var data dashboardData
	err := h.Hub.View(ctx, func(st *hub.State) error {
		data = buildDashboard(st)
		data.BaseVM = viewdata.NewBaseVM(r, "Dashboard", "/")
		data.Sidebar = viewdata.BuildSidebar(st)

		switch v.Role {
		case auth.RoleManager, auth.RoleDirector:
			data.Review = reviewerPanel(st, v.Role)
		default:
			data.Mine = contributorPanel(st, v.Name)
		}
		return nil
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load dashboard failed", err, "Could not load the dashboard.", "/")
		return
	}
	templates.Render(w, r, "dashboard", data)
}
