package auditlog

import (
	"testing"
	"time"

	"github.com/dalemusser/casehub/internal/app/store/audit"
)

func TestToItem(t *testing.T) {
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	e := audit.Event{
		Timestamp: ts,
		Category:  audit.CategoryReview,
		EventType: audit.EventCaseRejected,
		Actor:     "Current User",
		Role:      "director",
		CaseID:    "7",
		CaseTitle: "Printer queue",
		Details:   map[string]string{"stage": "director", "reason": "Needs steps"},
	}
	item := toItem(e)
	if item.CaseURL != "/cases/7" {
		t.Errorf("CaseURL = %q", item.CaseURL)
	}
	if item.Timestamp != "2025-06-15T12:00:00Z" {
		t.Errorf("Timestamp = %q", item.Timestamp)
	}
	if len(item.Details) != 2 || item.Details[0].Key != "reason" || item.Details[1].Key != "stage" {
		t.Errorf("Details not sorted: %+v", item.Details)
	}

	e.EventType = audit.EventCaseDeleted
	if got := toItem(e).CaseURL; got != "" {
		t.Errorf("deleted case links to %q", got)
	}
}

func TestEventTypesForCategory(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{audit.CategoryCase, 3},
		{audit.CategoryReview, 3},
		{"", 6},
		{"bogus", 0},
	}
	for _, tt := range tests {
		if got := len(eventTypesForCategory(tt.category)); got != tt.want {
			t.Errorf("eventTypesForCategory(%q) = %d types, want %d", tt.category, got, tt.want)
		}
	}
}
