// internal/app/features/contributors/handler.go
package contributors

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the contributor roster, profiles, follow toggles and the
// contributor analytics page.
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

func (h *Handler) notice(w http.ResponseWriter, r *http.Request, msg string) {
	if h.Sessions == nil {
		return
	}
	if err := h.Sessions.AddNotice(w, r, msg); err != nil {
		h.Log.Warn("add notice failed", zap.Error(err))
	}
}

func (h *Handler) read(r *http.Request, fn func(*hub.State) error) error {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	return h.Hub.View(ctx, fn)
}

func writeCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeouts.Medium())
}
