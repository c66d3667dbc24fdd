// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g. "/cases"). If empty,
	// any safe local URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject ("/edit", "/delete").
	// They keep a redirect from landing back on an action page.
	ExcludedSubpaths []string

	// ExcludedID, when set, rejects return URLs that mention it. Used after
	// a delete so the redirect never points at the removed case.
	ExcludedID string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks the "return" query parameter and then the form value, rejects
// anything that is not a local path, and applies the prefix and exclusion
// rules in opts.
//
//	url := navigation.SafeBackURL(r, navigation.CaseActionBackURL)
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), opts.ExcludedID, "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), opts.ExcludedID, "")
	}
	if ret == "" {
		return opts.Fallback
	}
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return opts.Fallback
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(ret, excluded) {
			return opts.Fallback
		}
	}
	return ret
}

// Common back URL configurations.
var (
	// CaseActionBackURL is used after toggles and comments: go back to the
	// page the action came from, falling back to the feed.
	CaseActionBackURL = BackURLOptions{
		ExcludedSubpaths: []string{"/edit", "/delete", "/new", "/preview"},
		Fallback:         "/",
	}

	// ContributorsBackURL is used after follow toggles.
	ContributorsBackURL = BackURLOptions{
		ExcludedSubpaths: []string{"/follow"},
		Fallback:         "/contributors",
	}

	// ApprovalsBackURL keeps reviewers inside their queue.
	ApprovalsBackURL = BackURLOptions{
		AllowedPrefix:    "/approvals",
		ExcludedSubpaths: []string{"/approve", "/reject"},
		Fallback:         "/approvals/manager",
	}
)
