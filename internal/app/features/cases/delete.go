// internal/app/features/cases/delete.go
package cases

import (
	"net/http"

	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/metrics"
	"github.com/dalemusser/casehub/internal/app/system/navigation"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete removes a case. Deleting an unknown id is a no-op.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	opts := navigation.CaseActionBackURL
	opts.ExcludedID = id
	back := navigation.SafeBackURL(r, opts)

	var deleted models.Case
	err := h.write(r, func(st *hub.State) error {
		c, err := st.DeleteCase(id)
		deleted = c
		return err
	})
	if isNotFound(err) {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete case failed", err, "Could not delete the case.", back)
		return
	}

	metrics.CasesDeleted.Inc()
	h.Log.Info("case deleted", zap.String("id", id))
	h.Audit.CaseDeleted(r, deleted)
	h.notice(w, r, "Case deleted successfully")
	http.Redirect(w, r, back, http.StatusSeeOther)
}
