// internal/app/features/cases/form.go
package cases

import (
	"net/http"
	"net/url"
	"strings"

	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	catalogstore "github.com/dalemusser/casehub/internal/app/store/catalog"
	"github.com/dalemusser/casehub/internal/app/system/attachments"
	"github.com/dalemusser/casehub/internal/app/system/formutil"
	"github.com/dalemusser/casehub/internal/app/system/inputval"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// caseInput holds the required editor fields.
type caseInput struct {
	Title        string `validate:"required,max=200" label:"Title"`
	Body         string `validate:"required" label:"Content"`
	CategoryID   string `validate:"required" label:"Category"`
	DivisionID   string `validate:"required" label:"Division"`
	DepartmentID string `validate:"required" label:"Department"`
	SectionID    string `validate:"required" label:"Section"`
	RootCause    string `validate:"required" label:"Root cause"`
}

// caseForm is everything the editor posts.
type caseForm struct {
	caseInput
	Solution string
	Keywords []string
	// Keep lists the ids of existing attachments to retain on edit.
	Keep []string
}

// parseCaseForm reads the editor fields. The form must already be parsed.
// Keywords may arrive as repeated "keyword" values or one comma list in
// "keywords"; both are split, trimmed and deduplicated.
func parseCaseForm(r *http.Request) caseForm {
	f := caseForm{
		caseInput: caseInput{
			Title:        strings.TrimSpace(r.FormValue("title")),
			Body:         strings.TrimSpace(r.FormValue("body")),
			CategoryID:   strings.TrimSpace(r.FormValue("category")),
			DivisionID:   strings.TrimSpace(r.FormValue("division")),
			DepartmentID: strings.TrimSpace(r.FormValue("department")),
			SectionID:    strings.TrimSpace(r.FormValue("section")),
			RootCause:    strings.TrimSpace(r.FormValue("root_cause")),
		},
		Solution: strings.TrimSpace(r.FormValue("solution")),
		Keep:     r.Form["keep_attachment"],
	}

	raw := append([]string{r.FormValue("keywords")}, r.Form["keyword"]...)
	var kws []string
	for _, v := range raw {
		kws = append(kws, strings.Split(v, ",")...)
	}
	f.Keywords = casestore.DedupeKeywords(kws)
	return f
}

// validate returns the first problem with the form, or "" when it can be
// saved. The solution is required only for Troubleshooting cases.
func (f caseForm) validate(cat *catalogstore.Store) string {
	if res := inputval.Validate(f.caseInput); res.HasErrors() {
		return res.First()
	}
	c, ok := cat.Category(f.CategoryID)
	if !ok {
		return "Category is invalid."
	}
	if c.Name == models.TroubleshootingCategory && f.Solution == "" {
		return "Solution is required for Troubleshooting cases."
	}
	if err := cat.ValidatePlacement(f.DivisionID, f.DepartmentID, f.SectionID); err != nil {
		return "Choose a department within the division and a section within the department."
	}
	return ""
}

// category resolves the chosen category into the snapshot stored on a case.
func (f caseForm) category(cat *catalogstore.Store) models.CategoryRef {
	c, _ := cat.Category(f.CategoryID)
	return models.CategoryRef{ID: c.ID, Name: c.Name, Color: c.Color}
}

// solution drops the solution text for categories that do not carry one.
func (f caseForm) solution(cat *catalogstore.Store) string {
	if f.category(cat).Name != models.TroubleshootingCategory {
		return ""
	}
	return f.Solution
}

// toCase builds an unsaved case from the form.
func (f caseForm) toCase(cat *catalogstore.Store, author models.Author) models.Case {
	return models.Case{
		Title:        f.Title,
		Body:         f.Body,
		Category:     f.category(cat),
		DivisionID:   f.DivisionID,
		DepartmentID: f.DepartmentID,
		SectionID:    f.SectionID,
		Author:       author,
		Keywords:     f.Keywords,
		RootCause:    f.RootCause,
		Solution:     f.solution(cat),
	}
}

// patch builds the store patch applied on edit. Status and engagement are
// never part of it.
func (f caseForm) patch(cat *catalogstore.Store, atts []models.Attachment) casestore.Patch {
	ref := f.category(cat)
	sol := f.solution(cat)
	kws := f.Keywords
	return casestore.Patch{
		Title:        &f.Title,
		Body:         &f.Body,
		Category:     &ref,
		DivisionID:   &f.DivisionID,
		DepartmentID: &f.DepartmentID,
		SectionID:    &f.SectionID,
		Keywords:     &kws,
		RootCause:    &f.RootCause,
		Solution:     &sol,
		Attachments:  &atts,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Editor view model                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

type option struct {
	ID       string
	Name     string
	ParentID string
	Selected bool
}

type attachmentVM struct {
	ID       string
	Name     string
	Size     string
	MIMEType string
	URL      string
}

type editorData struct {
	formutil.Base

	ID       string // blank for a new case
	IsEdit   bool
	Action   string
	Status   string
	Form     caseForm
	Keywords string

	Categories  []option
	Divisions   []option
	Departments []option
	Sections    []option

	Attachments   []attachmentVM
	MaxFiles      int
	MaxFileSize   string
	Troubleshoot  string
	CancelURL     string
	DeleteURL     string
	DeleteReturn  string
	PreviewAction string
}

func toAttachmentVMs(atts []models.Attachment) []attachmentVM {
	out := make([]attachmentVM, 0, len(atts))
	for _, a := range atts {
		vm := attachmentVM{
			ID:       a.ID,
			Name:     a.Name,
			Size:     attachments.FormatSize(a.Size),
			MIMEType: a.MIMEType,
		}
		if a.Ref != "" {
			vm.URL = "/files/" + a.Ref + "?a=" + url.QueryEscape(a.ID)
		}
		out = append(out, vm)
	}
	return out
}

// buildEditor fills the catalog choices for f. Departments narrow by the
// chosen division and sections by the chosen department; all of them are
// rendered when nothing is chosen yet so the page works without script.
func (h *Handler) buildEditor(cat *catalogstore.Store, d *editorData) {
	f := d.Form
	for _, c := range cat.ListCategories() {
		d.Categories = append(d.Categories, option{ID: c.ID, Name: c.Name, Selected: c.ID == f.CategoryID})
	}
	for _, div := range cat.ListDivisions() {
		d.Divisions = append(d.Divisions, option{ID: div.ID, Name: div.Name, Selected: div.ID == f.DivisionID})
	}
	for _, dept := range cat.ListDepartments(f.DivisionID) {
		d.Departments = append(d.Departments, option{ID: dept.ID, Name: dept.Name, ParentID: dept.DivisionID, Selected: dept.ID == f.DepartmentID})
	}
	if f.DepartmentID != "" {
		for _, sec := range cat.ListSections(f.DepartmentID) {
			d.Sections = append(d.Sections, option{ID: sec.ID, Name: sec.Name, ParentID: sec.DepartmentID, Selected: sec.ID == f.SectionID})
		}
	}
	d.Keywords = strings.Join(f.Keywords, ", ")
	d.MaxFiles = h.Limits.MaxFiles
	d.MaxFileSize = attachments.FormatSize(h.Limits.MaxBytes)
	d.Troubleshoot = models.TroubleshootingCategory
	d.PreviewAction = "/cases/preview"
}

func (h *Handler) renderEditor(w http.ResponseWriter, r *http.Request, d editorData) {
	templates.Render(w, r, "case_editor", d)
}
