package shortcuts_test

import (
	"testing"

	"github.com/dalemusser/casehub/internal/app/system/casefilter"
	"github.com/dalemusser/casehub/internal/app/system/shortcuts"
)

func TestResolve(t *testing.T) {
	none := casefilter.Criteria{}
	filtered := casefilter.Criteria{CategoryID: "1", Search: "disk"}

	tests := []struct {
		name     string
		ev       shortcuts.Event
		crit     casefilter.Criteria
		action   shortcuts.Action
		location string
	}{
		{"N opens editor", shortcuts.Event{Key: "n", View: shortcuts.ViewFeed}, none, shortcuts.NewCase, "/cases/new"},
		{"C opens contributors", shortcuts.Event{Key: "C"}, none, shortcuts.Contributors, "/contributors"},
		{"D opens dashboard", shortcuts.Event{Key: "d"}, none, shortcuts.Dashboard, "/dashboard"},
		{"S turns saved on", shortcuts.Event{Key: "s", View: shortcuts.ViewFeed}, none, shortcuts.ToggleSaved, "/?saved=1"},
		{"S keeps list view", shortcuts.Event{Key: "s", View: shortcuts.ViewList}, none, shortcuts.ToggleSaved, "/list?saved=1"},
		{"S turns saved off", shortcuts.Event{Key: "s"}, casefilter.Criteria{SavedOnly: true}, shortcuts.ToggleSaved, "/"},
		{"Escape leaves editor", shortcuts.Event{Key: "Escape", View: shortcuts.ViewEdit}, filtered, shortcuts.BackToFeed, "/"},
		{"Escape clears filters", shortcuts.Event{Key: "Escape", View: shortcuts.ViewFeed}, filtered, shortcuts.ClearFilters, "/"},
		{"Escape with nothing to do", shortcuts.Event{Key: "Escape", View: shortcuts.ViewFeed}, none, shortcuts.None, ""},
		{"? shows help", shortcuts.Event{Key: "?"}, none, shortcuts.ShowHelp, ""},
		{"Ctrl+K focuses search", shortcuts.Event{Key: "k", Ctrl: true}, none, shortcuts.FocusSearch, ""},
		{"Cmd+K focuses search", shortcuts.Event{Key: "K", Meta: true}, none, shortcuts.FocusSearch, ""},
		{"Ctrl+N is ignored", shortcuts.Event{Key: "n", Ctrl: true}, none, shortcuts.None, ""},
		{"typing in input", shortcuts.Event{Key: "n", Target: "input"}, none, shortcuts.None, ""},
		{"typing in textarea", shortcuts.Event{Key: "Escape", Target: "TEXTAREA", View: shortcuts.ViewEdit}, none, shortcuts.None, ""},
		{"typing in contenteditable", shortcuts.Event{Key: "d", Target: "DIV", ContentEditable: true}, none, shortcuts.None, ""},
		{"unbound key", shortcuts.Event{Key: "x"}, none, shortcuts.None, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shortcuts.Resolve(tt.ev, tt.crit)
			if got.Action != tt.action {
				t.Errorf("action: got %q, want %q", got.Action, tt.action)
			}
			if got.Location != tt.location {
				t.Errorf("location: got %q, want %q", got.Location, tt.location)
			}
		})
	}
}

func TestClearedMessage(t *testing.T) {
	if got := shortcuts.ClearedMessage(1); got != "All filters cleared: 1 filter removed" {
		t.Errorf("got %q", got)
	}
	if got := shortcuts.ClearedMessage(3); got != "All filters cleared: 3 filters removed" {
		t.Errorf("got %q", got)
	}
}
