// internal/app/system/shortcuts/shortcuts.go
package shortcuts

import (
	"fmt"
	"strings"

	"github.com/dalemusser/casehub/internal/app/system/casefilter"
)

// Action is what the page should do in response to a key press.
type Action string

const (
	None         Action = ""
	NewCase      Action = "new_case"
	Contributors Action = "contributors"
	Dashboard    Action = "dashboard"
	ToggleSaved  Action = "toggle_saved"
	BackToFeed   Action = "back_to_feed"
	ClearFilters Action = "clear_filters"
	ShowHelp     Action = "help"
	FocusSearch  Action = "focus_search"
)

// View names the screen the key was pressed on.
type View string

const (
	ViewFeed         View = "feed"
	ViewList         View = "list"
	ViewCase         View = "view"
	ViewEdit         View = "edit"
	ViewNew          View = "new"
	ViewDashboard    View = "dashboard"
	ViewContributors View = "contributors"
	ViewApprovals    View = "approvals"
)

// Event is a key press reported by the page.
type Event struct {
	Key             string `json:"key"`
	Ctrl            bool   `json:"ctrl"`
	Meta            bool   `json:"meta"`
	Target          string `json:"target"` // tag name of the focused element
	ContentEditable bool   `json:"content_editable"`
	View            View   `json:"view"`
	Query           string `json:"query"` // the feed's current query string
}

// Result tells the page what to do.
type Result struct {
	Action   Action `json:"action"`
	Location string `json:"location,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Help lists the bindings for the help overlay.
var Help = []struct{ Keys, Description string }{
	{"N", "New case"},
	{"C", "Contributors"},
	{"D", "Dashboard"},
	{"S", "Toggle saved cases"},
	{"Esc", "Back to feed / clear filters"},
	{"Ctrl/Cmd + K", "Search"},
	{"?", "Show shortcuts"},
}

// typing reports whether the key went to a text-entry element.
func (e Event) typing() bool {
	switch strings.ToUpper(e.Target) {
	case "INPUT", "TEXTAREA":
		return true
	}
	return e.ContentEditable
}

func (e Event) editing() bool {
	return e.View == ViewCase || e.View == ViewEdit || e.View == ViewNew
}

// Resolve maps a key press to an action. Keys typed into text fields are
// ignored.
func Resolve(e Event, crit casefilter.Criteria) Result {
	if e.typing() {
		return Result{Action: None}
	}
	if (e.Ctrl || e.Meta) && strings.EqualFold(e.Key, "k") {
		return Result{Action: FocusSearch}
	}
	if e.Ctrl || e.Meta {
		return Result{Action: None}
	}

	switch e.Key {
	case "n", "N":
		return Result{Action: NewCase, Location: "/cases/new", Message: "Creating new case (Keyboard shortcut: N)"}
	case "c", "C":
		return Result{Action: Contributors, Location: "/contributors", Message: "Viewing contributors (Keyboard shortcut: C)"}
	case "d", "D":
		return Result{Action: Dashboard, Location: "/dashboard", Message: "Viewing dashboard (Keyboard shortcut: D)"}
	case "s", "S":
		next := crit
		next.SavedOnly = !crit.SavedOnly
		msg := "Showing all cases"
		if next.SavedOnly {
			msg = "Showing saved cases (Keyboard shortcut: S)"
		}
		base := "/"
		if e.View == ViewList {
			base = "/list"
		}
		return Result{Action: ToggleSaved, Location: withQuery(base, next), Message: msg}
	case "Escape":
		if e.editing() {
			return Result{Action: BackToFeed, Location: "/"}
		}
		if n := crit.ActiveCount(); n > 0 {
			return Result{Action: ClearFilters, Location: "/", Message: ClearedMessage(n)}
		}
		return Result{Action: None}
	case "?":
		return Result{Action: ShowHelp}
	}
	return Result{Action: None}
}

// ClearedMessage is the notice shown after filters are cleared.
func ClearedMessage(n int) string {
	s := "s"
	if n == 1 {
		s = ""
	}
	return fmt.Sprintf("All filters cleared: %d filter%s removed", n, s)
}

func withQuery(path string, c casefilter.Criteria) string {
	if q := c.Values().Encode(); q != "" {
		return path + "?" + q
	}
	return path
}
