// Package formutil provides helpers for form re-rendering with validation errors.
//
// When an editor submission fails validation, the form is re-rendered with
// the values the user entered, an error message, and the catalog choices
// the form needs. Base carries the common part.
//
//	type editorData struct {
//		formutil.Base
//		Title string
//	}
//
//	data := editorData{Title: title}
//	formutil.SetBase(&data.Base, r, "New case", "/")
//	data.SetError("Title is required.")
//	templates.Render(w, r, "case_editor", data)
package formutil

import (
	"net/http"

	"github.com/dalemusser/casehub/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form
// data structs.
type Base struct {
	viewdata.BaseVM
	Error string
	// CanSubmit drives the disabled state of the submit button.
	CanSubmit bool
}

// SetBase populates the common Base fields from the request.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
	b.CanSubmit = true
}

// SetError sets the error message and disables submission until the form
// changes.
func (b *Base) SetError(msg string) {
	b.Error = msg
	b.CanSubmit = msg == ""
}
