// internal/app/features/auditlog/types.go
package auditlog

import (
	"github.com/dalemusser/casehub/internal/app/store/audit"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
)

// listItem represents a single audit event row for display.
type listItem struct {
	ID        string
	When      string // relative, e.g. "3 minutes ago"
	Timestamp string
	Category  string
	EventType string
	Actor     string
	Role      string
	CaseID    string
	CaseTitle string
	CaseURL   string
	IP        string
	Details   []detail
}

type detail struct {
	Key   string
	Value string
}

// listData is the view model for the audit log list page.
type listData struct {
	viewdata.BaseVM

	Items []listItem

	// Filters
	Category  string
	EventType string
	CaseID    string
	StartDate string
	EndDate   string

	Categories []categoryOption
	EventTypes []string

	// Pagination
	Page       int
	TotalPages int
	Total      int
	RangeStart int
	RangeEnd   int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
}

// categoryOption represents a category for the filter dropdown.
type categoryOption struct {
	Value string
	Label string
}

func allCategories() []categoryOption {
	return []categoryOption{
		{Value: audit.CategoryCase, Label: "Case edits"},
		{Value: audit.CategoryReview, Label: "Reviews"},
	}
}

// eventTypesForCategory returns the event types for a given category.
// If category is empty, returns all event types.
func eventTypesForCategory(category string) []string {
	caseEvents := []string{
		audit.EventCaseCreated,
		audit.EventCaseUpdated,
		audit.EventCaseDeleted,
	}
	reviewEvents := []string{
		audit.EventCaseForwarded,
		audit.EventCaseApproved,
		audit.EventCaseRejected,
	}

	switch category {
	case audit.CategoryCase:
		return caseEvents
	case audit.CategoryReview:
		return reviewEvents
	case "":
		return append(append([]string{}, caseEvents...), reviewEvents...)
	default:
		return nil
	}
}
