// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the case feed, the compact list and the clear-filters
// action.
type Handler struct {
	Hub      *hub.Hub
	Sessions *auth.SessionManager
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(h *hub.Hub, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Hub:      h,
		Sessions: sm,
		ErrLog:   errLog,
		Log:      logger,
	}
}

func (h *Handler) view(r *http.Request, fn func(*hub.State) error) error {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	return h.Hub.View(ctx, fn)
}
