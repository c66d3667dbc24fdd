// internal/app/features/cases/files.go
package cases

import (
	"mime"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/system/attachments"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ServeFile streams stored attachment content by its content reference.
// The download name and type come from the attachment record named by the
// "a" query parameter, falling back to any record that shares the content.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	id := r.URL.Query().Get("a")

	var (
		blob attachments.Blob
		att  models.Attachment
		ok   bool
	)
	if err := h.read(r, func(st *hub.State) error {
		blob, ok = st.Blobs.Get(ref)
		if ok {
			att, ok = st.Attachment(ref, id)
		}
		return nil
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "load attachment failed", err, "Could not load the file.", "/")
		return
	}
	if !ok {
		uierrors.RenderNotFound(w, r, "File not found.", "/")
		return
	}

	ct := att.MIMEType
	if ct == "" {
		ct = blob.MIMEType
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": att.Name}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(blob.Data)
}
