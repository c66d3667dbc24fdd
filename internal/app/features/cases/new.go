// internal/app/features/cases/new.go
package cases

import (
	"net/http"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/formutil"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/metrics"
	"github.com/dalemusser/casehub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeNew renders a blank editor. The placement defaults to the viewer's
// own division, department and section.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	v := auth.CurrentViewer(r)
	d := editorData{Action: "/cases", CancelURL: "/"}
	d.Form.DivisionID = v.DivisionID
	d.Form.DepartmentID = v.DepartmentID
	d.Form.SectionID = v.SectionID
	formutil.SetBase(&d.Base, r, "New case", "/")

	if err := h.read(r, func(st *hub.State) error {
		h.buildEditor(st.Catalog, &d)
		return nil
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "load editor failed", err, "Could not open the editor.", "/")
		return
	}
	h.renderEditor(w, r, d)
}

// HandleCreate validates the editor and stores a new case pending manager
// review. Attachments over the limits are skipped with a notice.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	batch, err := h.parseEditorForm(w, r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse case form failed", err, "The form could not be read.", "/cases/new")
		return
	}
	form := parseCaseForm(r)
	files, refused := batch.take(h.Limits, 0)
	author := auth.CurrentViewer(r).Author()

	var (
		created models.Case
		invalid *editorData
		stored  int64
	)
	err = h.write(r, func(st *hub.State) error {
		if msg := form.validate(st.Catalog); msg != "" {
			d := editorData{Action: "/cases", CancelURL: "/", Form: form}
			formutil.SetBase(&d.Base, r, "New case", "/")
			d.SetError(msg)
			h.buildEditor(st.Catalog, &d)
			invalid = &d
			return nil
		}
		c := form.toCase(st.Catalog, author)
		c.Attachments = storeUploads(st, files)
		for _, a := range c.Attachments {
			stored += a.Size
		}
		created = st.CreateCase(c)
		return nil
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create case failed", err, "Could not save the case.", "/")
		return
	}
	if invalid != nil {
		h.renderEditor(w, r, *invalid)
		return
	}

	metrics.CasesCreated.Inc()
	h.Log.Info("case created",
		zap.String("id", created.ID),
		zap.String("author", created.Author.Name),
		zap.Int("attachments", len(created.Attachments)),
		zap.Int64("bytes", stored))
	for _, msg := range refused {
		h.notice(w, r, msg)
	}
	h.Audit.CaseCreated(r, created)
	h.notice(w, r, "Case submitted for manager review")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandlePreview renders the case viewer for the posted editor content
// without storing anything.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if _, err := h.parseEditorForm(w, r); err != nil {
		uierrors.RenderBadRequest(w, r, "The form could not be read.", "/cases/new")
		return
	}
	form := parseCaseForm(r)
	author := auth.CurrentViewer(r).Author()

	var d viewData
	if err := h.read(r, func(st *hub.State) error {
		c := form.toCase(st.Catalog, author)
		c.Status = models.StatusDraft
		if id := r.FormValue("id"); id != "" {
			if orig, err := st.Cases.FindByID(id); err == nil {
				c.ID = orig.ID
				c.Status = orig.Status
				c.Attachments = orig.Attachments
			}
		}
		c.LastModified = "Just now"
		d = buildView(r, st, c)
		return nil
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "preview failed", err, "Could not render the preview.", "/")
		return
	}
	d.Preview = true
	d.Title = "Preview: " + form.Title
	renderView(w, r, d)
}
