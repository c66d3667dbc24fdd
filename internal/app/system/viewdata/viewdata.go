// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// SiteName is shown in the header and page titles.
const SiteName = "CaseHub"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName string

	// Viewer context (from the session middleware)
	UserName   string
	UserAvatar string
	Role       string
	RoleLabel  string
	CanReview  bool
	Roles      []auth.Role

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// One-shot notices (toasts)
	Notices []string

	// Filled by WithSidebar on pages that show it.
	Sidebar *Sidebar
}

// NewBaseVM creates a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	v := auth.CurrentViewer(r)
	return BaseVM{
		SiteName:    SiteName,
		UserName:    v.Name,
		UserAvatar:  v.Avatar,
		Role:        string(v.Role),
		RoleLabel:   v.Role.Label(),
		CanReview:   v.CanReview(),
		Roles:       auth.Roles,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Notices:     auth.Notices(r),
	}
}

// RecentItem is one entry of the recently viewed list.
type RecentItem struct {
	ID    string
	Title string
}

// DepartmentNode is a department with its sections.
type DepartmentNode struct {
	models.Department
	Sections []models.Section
}

// DivisionNode is a division with its departments.
type DivisionNode struct {
	models.Division
	Departments []DepartmentNode
}

// Sidebar is the navigation column shown beside the feed.
type Sidebar struct {
	PendingManager  int
	PendingDirector int
	Approved        int
	Recent          []RecentItem
	Divisions       []DivisionNode
	Categories      []models.Category
}

// BuildSidebar reads the sidebar contents from st. Call it inside a hub
// command.
func BuildSidebar(st *hub.State) *Sidebar {
	counts := st.Cases.CountByStatus()
	sb := &Sidebar{
		PendingManager:  counts[models.StatusPendingManager],
		PendingDirector: counts[models.StatusPendingDirector],
		Approved:        counts[models.StatusApproved],
		Categories:      st.Catalog.ListCategories(),
	}
	for _, c := range st.Social.RecentCases() {
		sb.Recent = append(sb.Recent, RecentItem{ID: c.ID, Title: c.Title})
	}
	for _, div := range st.Catalog.ListDivisions() {
		dn := DivisionNode{Division: div}
		for _, dept := range st.Catalog.ListDepartments(div.ID) {
			dn.Departments = append(dn.Departments, DepartmentNode{
				Department: dept,
				Sections:   st.Catalog.ListSections(dept.ID),
			})
		}
		sb.Divisions = append(sb.Divisions, dn)
	}
	return sb
}
