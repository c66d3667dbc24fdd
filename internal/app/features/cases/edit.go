// internal/app/features/cases/edit.go
package cases

import (
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/system/formutil"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func formFromCase(c models.Case) caseForm {
	return caseForm{
		caseInput: caseInput{
			Title:        c.Title,
			Body:         c.Body,
			CategoryID:   c.Category.ID,
			DivisionID:   c.DivisionID,
			DepartmentID: c.DepartmentID,
			SectionID:    c.SectionID,
			RootCause:    c.RootCause,
		},
		Solution: c.Solution,
		Keywords: c.Keywords,
	}
}

func (h *Handler) editData(r *http.Request, c models.Case, form caseForm) editorData {
	base := "/cases/" + url.PathEscape(c.ID)
	d := editorData{
		ID:           c.ID,
		IsEdit:       true,
		Action:       base + "/edit",
		Status:       c.Status.Label(),
		Form:         form,
		Attachments:  toAttachmentVMs(c.Attachments),
		CancelURL:    base + "?ref=cached",
		DeleteURL:    base + "/delete",
		DeleteReturn: "/",
	}
	formutil.SetBase(&d.Base, r, "Edit case", d.CancelURL)
	return d
}

// ServeEdit renders the editor filled with a stored case.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var d editorData
	err := h.read(r, func(st *hub.State) error {
		c, err := st.Cases.FindByID(id)
		if err != nil {
			return err
		}
		d = h.editData(r, c, formFromCase(c))
		h.buildEditor(st.Catalog, &d)
		return nil
	})
	if isNotFound(err) {
		uierrors.RenderNotFound(w, r, "Case not found.", httpnav.ResolveBackURL(r, "/"))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load case for edit failed", err, "Could not open the editor.", "/")
		return
	}
	h.renderEditor(w, r, d)
}

// HandleEdit saves editor changes to a stored case. The status is kept.
// Existing attachments survive only when listed in keep_attachment; new
// uploads count against the same file limit.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	batch, err := h.parseEditorForm(w, r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse case form failed", err, "The form could not be read.", "/cases/"+url.PathEscape(id)+"/edit")
		return
	}
	form := parseCaseForm(r)
	keep := make(map[string]bool, len(form.Keep))
	for _, k := range form.Keep {
		keep[k] = true
	}

	// Count the retained attachments first so uploads are checked against
	// the remaining room.
	var retained int
	err = h.read(r, func(st *hub.State) error {
		c, err := st.Cases.FindByID(id)
		if err != nil {
			return err
		}
		for _, a := range c.Attachments {
			if keep[a.ID] {
				retained++
			}
		}
		return nil
	})
	if isNotFound(err) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load case for edit failed", err, "Could not save the case.", "/")
		return
	}
	files, refused := batch.take(h.Limits, retained)

	var (
		invalid *editorData
		updated models.Case
		pruned  int
	)
	err = h.write(r, func(st *hub.State) error {
		c, err := st.Cases.FindByID(id)
		if err != nil {
			return err
		}
		if msg := form.validate(st.Catalog); msg != "" {
			d := h.editData(r, c, form)
			d.SetError(msg)
			h.buildEditor(st.Catalog, &d)
			invalid = &d
			return nil
		}
		var atts []models.Attachment
		for _, a := range c.Attachments {
			if keep[a.ID] {
				atts = append(atts, a)
			}
		}
		atts = append(atts, storeUploads(st, files)...)

		before := st.Blobs.Len()
		if err := st.UpdateCase(id, form.patch(st.Catalog, atts)); err != nil {
			return err
		}
		pruned = before - st.Blobs.Len()
		updated, err = st.Cases.FindByID(id)
		return err
	})
	if isNotFound(err) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update case failed", err, "Could not save the case.", "/")
		return
	}
	if invalid != nil {
		h.renderEditor(w, r, *invalid)
		return
	}

	h.Log.Info("case updated", zap.String("id", id), zap.Int("blobs_pruned", pruned))
	h.Audit.CaseUpdated(r, updated)
	for _, msg := range refused {
		h.notice(w, r, msg)
	}
	h.notice(w, r, "Case updated")
	http.Redirect(w, r, "/cases/"+url.PathEscape(id)+"?ref=cached", http.StatusSeeOther)
}
