// internal/app/features/approvals/handler.go
package approvals

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/system/auditlog"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the manager and director review queues.
type Handler struct {
	Hub      *hub.Hub
	Sessions *auth.SessionManager
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger

	// Audit records decisions; nil disables it.
	Audit *auditlog.Logger
}

// NewHandler constructs an approvals Handler.
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

func (h *Handler) write(r *http.Request, fn func(*hub.State) error) error {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	return h.Hub.Do(ctx, fn)
}
