// internal/app/features/approvals/decide.go
package approvals

import (
	"errors"
	"net/http"

	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	"github.com/dalemusser/casehub/internal/app/system/approval"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/limits"
	"github.com/dalemusser/casehub/internal/app/system/metrics"
	"github.com/dalemusser/casehub/internal/app/system/navigation"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func queueBack(r *http.Request, stage approval.Stage) string {
	opts := navigation.ApprovalsBackURL
	opts.Fallback = "/approvals/" + string(stage)
	return navigation.SafeBackURL(r, opts)
}

// decide runs one review decision and reports the outcome as a notice.
// Unknown ids and cases that already left the queue are ignored.
func (h *Handler) decide(w http.ResponseWriter, r *http.Request, stage approval.Stage, action string, fn func(st *hub.State, id string) (models.Case, error), done string) {
	id := chi.URLParam(r, "id")
	back := queueBack(r, stage)

	var decided models.Case
	err := h.write(r, func(st *hub.State) error {
		c, err := fn(st, id)
		decided = c
		return err
	})
	switch {
	case err == nil:
		metrics.ApprovalActions.WithLabelValues(string(stage) + "_" + action).Inc()
		h.Log.Info("review decision", zap.String("stage", string(stage)), zap.String("action", action), zap.String("id", id))
		if action == "approve" {
			h.Audit.Approved(r, stage, decided)
		} else {
			h.Audit.Rejected(r, stage, decided)
		}
		h.notice(w, r, done)
	case errors.Is(err, approval.ErrReasonRequired):
		h.notice(w, r, "Please provide a reason for rejection.")
	case errors.Is(err, casestore.ErrNotFound), errors.Is(err, approval.ErrInvalidTransition):
		h.Log.Debug("review decision ignored", zap.String("id", id), zap.Error(err))
	default:
		h.ErrLog.LogServerError(w, r, "review decision failed", err, "Could not update the case.", back)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// HandleApprove moves a case one step forward out of stage's queue.
func (h *Handler) HandleApprove(stage approval.Stage) http.HandlerFunc {
	done := "Case approved. It has been forwarded to the director for review."
	if stage == approval.StageDirector {
		done = "Case approved and published. It is now visible to all users."
	}
	return func(w http.ResponseWriter, r *http.Request) {
		h.decide(w, r, stage, "approve", func(st *hub.State, id string) (models.Case, error) {
			return st.Approval.Approve(stage, id)
		}, done)
	}
}

// HandleReject turns a case down with the posted reason.
func (h *Handler) HandleReject(stage approval.Stage) http.HandlerFunc {
	done := "Case rejected. The author will see the reason."
	if stage == approval.StageDirector {
		done = "Case sent back to the manager with your feedback."
	}
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxReasonSize)
		reason := r.FormValue("reason")
		h.decide(w, r, stage, "reject", func(st *hub.State, id string) (models.Case, error) {
			return st.Approval.Reject(stage, id, reason)
		}, done)
	}
}
