// internal/app/features/cases/social.go
package cases

import (
	"errors"
	"net/http"

	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/limits"
	"github.com/dalemusser/casehub/internal/app/system/metrics"
	"github.com/dalemusser/casehub/internal/app/system/navigation"
	"github.com/dalemusser/casehub/internal/app/system/social"
	"github.com/go-chi/chi/v5"
)

// toggle runs fn against the case named in the URL and sends the viewer
// back where they came from. fn may return a notice to show. Unknown case
// and comment ids are ignored.
func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, what string, fn func(st *hub.State, id string) (string, error)) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, navigation.CaseActionBackURL)

	var msg string
	err := h.write(r, func(st *hub.State) error {
		var err error
		msg, err = fn(st, id)
		return err
	})
	switch {
	case err == nil, isNotFound(err), errors.Is(err, social.ErrCommentNotFound):
	default:
		h.ErrLog.LogServerError(w, r, what+" failed", err, "Could not update the case.", back)
		return
	}
	if msg != "" {
		h.notice(w, r, msg)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// HandleLike flips the viewer's like on a case.
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "toggle like", func(st *hub.State, id string) (string, error) {
		_, err := st.Social.ToggleLike(id)
		return "", err
	})
}

// HandleSave flips the saved flag used by the "saved only" filter and
// confirms the new state.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "toggle save", func(st *hub.State, id string) (string, error) {
		on, err := st.Social.ToggleSave(id)
		if err != nil {
			return "", err
		}
		if on {
			return "Case saved", nil
		}
		return "Removed from saved cases", nil
	})
}

// HandleFavorite flips the favorite flag and confirms the new state.
func (h *Handler) HandleFavorite(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "toggle favorite", func(st *hub.State, id string) (string, error) {
		on, err := st.Social.ToggleFavorite(id)
		if err != nil {
			return "", err
		}
		if on {
			return "Added to favorites", nil
		}
		return "Removed from favorites", nil
	})
}

// HandleComment appends the viewer's comment to a case.
func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxCommentSize)
	author := auth.CurrentViewer(r).Author()
	body := r.FormValue("body")
	h.toggle(w, r, "add comment", func(st *hub.State, id string) (string, error) {
		_, err := st.Social.AddComment(id, author, body, st.Now())
		if errors.Is(err, social.ErrEmptyComment) {
			return "Write something before posting a comment.", nil
		}
		if err == nil {
			metrics.Comments.Inc()
		}
		return "", err
	})
}

// HandleCommentLike flips the viewer's like on one comment.
func (h *Handler) HandleCommentLike(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")
	h.toggle(w, r, "toggle comment like", func(st *hub.State, id string) (string, error) {
		_, err := st.Social.ToggleCommentLike(id, commentID)
		return "", err
	})
}
