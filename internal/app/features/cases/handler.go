// internal/app/features/cases/handler.go
package cases

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	"github.com/dalemusser/casehub/internal/app/system/attachments"
	"github.com/dalemusser/casehub/internal/app/system/auditlog"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the case editor, the case viewer, the social actions on a
// case and attachment downloads.
type Handler struct {
	Hub      *hub.Hub
	Sessions *auth.SessionManager
	Limits   attachments.Limits
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger

	// Audit records edits; nil disables it.
	Audit *auditlog.Logger
}

// NewHandler constructs a cases Handler.
func NewHandler(h *hub.Hub, sm *auth.SessionManager, limits attachments.Limits, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Hub:      h,
		Sessions: sm,
		Limits:   limits,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// notice queues a toast for the next page. Sessions is nil in unit tests.
func (h *Handler) notice(w http.ResponseWriter, r *http.Request, msg string) {
	if h.Sessions == nil {
		return
	}
	if err := h.Sessions.AddNotice(w, r, msg); err != nil {
		h.Log.Warn("add notice failed", zap.Error(err))
	}
}

// read runs a read-only hub command with the short timeout.
func (h *Handler) read(r *http.Request, fn func(*hub.State) error) error {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	return h.Hub.View(ctx, fn)
}

// write runs a state-changing hub command with the medium timeout.
func (h *Handler) write(r *http.Request, fn func(*hub.State) error) error {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	return h.Hub.Do(ctx, fn)
}

func isNotFound(err error) bool {
	return errors.Is(err, casestore.ErrNotFound)
}
