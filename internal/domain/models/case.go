// internal/domain/models/case.go
package models

// Status is the approval workflow state of a Case.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingManager  Status = "pending_manager"
	StatusPendingDirector Status = "pending_director"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
)

// Statuses lists every workflow state in display order.
var Statuses = []Status{
	StatusDraft,
	StatusPendingManager,
	StatusPendingDirector,
	StatusApproved,
	StatusRejected,
}

// IsValid reports whether s is a known workflow state.
func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns a human-friendly name for the status.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPendingManager:
		return "Pending manager review"
	case StatusPendingDirector:
		return "Pending director approval"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

// TroubleshootingCategory is the only category whose cases carry a Solution.
const TroubleshootingCategory = "Troubleshooting"

// CategoryRef is the category snapshot stored on a Case.
type CategoryRef struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// Author identifies who wrote a case or comment.
type Author struct {
	Name   string `yaml:"name" json:"name"`
	Avatar string `yaml:"avatar" json:"avatar"`
}

// Initials returns up to two leading letters of the author's name.
func (a Author) Initials() string {
	out := make([]rune, 0, 2)
	atStart := true
	for _, r := range a.Name {
		if r == ' ' {
			atStart = true
			continue
		}
		if atStart && len(out) < 2 {
			out = append(out, r)
		}
		atStart = false
	}
	return string(out)
}

// Attachment describes a file attached to a case. Ref points at the stored
// content (see system/attachments).
type Attachment struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Size     int64  `yaml:"size" json:"size"`
	MIMEType string `yaml:"type" json:"type"`
	Ref      string `yaml:"ref" json:"ref"`
}

// Case is a knowledge article / incident report.
//
// A Case is visible in the public feed only when Status is approved.
// ApprovedAt is set on the transition into approved and is never cleared by
// later edits.
type Case struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`

	Category     CategoryRef `yaml:"category" json:"category"`
	DivisionID   string      `yaml:"division_id" json:"division_id"`
	DepartmentID string      `yaml:"department_id" json:"department_id"`
	SectionID    string      `yaml:"section_id" json:"section_id"`

	CreatedAt    int64  `yaml:"created_at" json:"created_at"` // unix millis
	LastModified string `yaml:"last_modified" json:"last_modified"`

	Author   Author   `yaml:"author" json:"author"`
	Keywords []string `yaml:"keywords" json:"keywords"`

	RootCause   string       `yaml:"root_cause,omitempty" json:"root_cause,omitempty"`
	Solution    string       `yaml:"solution,omitempty" json:"solution,omitempty"`
	Attachments []Attachment `yaml:"attachments,omitempty" json:"attachments,omitempty"`
	Comments    []Comment    `yaml:"comments,omitempty" json:"comments,omitempty"`

	Views    int    `yaml:"views" json:"views"`
	Stars    int    `yaml:"stars" json:"stars"`
	Likes    Toggle `yaml:"likes" json:"likes"`
	Saved    bool   `yaml:"saved" json:"saved"`
	Favorite bool   `yaml:"favorite" json:"favorite"`

	Status          Status `yaml:"status" json:"status"`
	RejectionReason string `yaml:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	ApprovedAt      int64  `yaml:"approved_at,omitempty" json:"approved_at,omitempty"` // unix millis, 0 = unset
}

// Visible reports whether the case may appear in the feed, list and search.
func (c *Case) Visible() bool {
	return c.Status == StatusApproved
}

// IsTroubleshooting reports whether the case belongs to the Troubleshooting
// category (and so carries a Solution).
func (c *Case) IsTroubleshooting() bool {
	return c.Category.Name == TroubleshootingCategory
}

// Clone returns a deep copy so callers outside the store cannot alias the
// store's slices.
func (c Case) Clone() Case {
	out := c
	out.Keywords = append([]string(nil), c.Keywords...)
	out.Attachments = append([]Attachment(nil), c.Attachments...)
	out.Comments = append([]Comment(nil), c.Comments...)
	return out
}
