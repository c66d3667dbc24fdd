// internal/app/features/auditlog/handler.go
package auditlog

import (
	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/store/audit"
	"go.uber.org/zap"
)

// Handler serves the case activity log to reviewers.
type Handler struct {
	Store  *audit.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler creates a new audit log handler.
func NewHandler(store *audit.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		ErrLog: errLog,
		Log:    logger,
	}
}
