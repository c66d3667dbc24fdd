package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/casehub/internal/app/system/auth"
	"go.uber.org/zap"
)

// ContributorViewer returns the default persona.
func ContributorViewer() auth.Viewer {
	return auth.Viewer{
		Name:         "Current User",
		DivisionID:   "it",
		DepartmentID: "it-dept",
		SectionID:    "it-section",
		Role:         auth.RoleContributor,
	}
}

// ManagerViewer returns the viewer acting as a manager.
func ManagerViewer() auth.Viewer {
	v := ContributorViewer()
	v.Role = auth.RoleManager
	return v
}

// DirectorViewer returns the viewer acting as a director.
func DirectorViewer() auth.Viewer {
	v := ContributorViewer()
	v.Role = auth.RoleDirector
	return v
}

// NewSessionManager returns a cookie session manager whose default persona
// is ContributorViewer.
func NewSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "casehub-test", "", false, ContributorViewer(), zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return sm
}

// NoticesAfter replays the cookies set by rec on a fresh request through
// the session middleware and returns the notices it carries. When a cookie
// was set more than once, the last value wins, as in a browser.
func NoticesAfter(sm *auth.SessionManager, rec *ResponseRecorder) []string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	last := map[string]*http.Cookie{}
	var order []string
	for _, c := range rec.Result().Cookies() {
		if _, seen := last[c.Name]; !seen {
			order = append(order, c.Name)
		}
		last[c.Name] = c
	}
	for _, name := range order {
		req.AddCookie(last[name])
	}
	var out []string
	sm.LoadViewer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		out = auth.Notices(r)
	})).ServeHTTP(httptest.NewRecorder(), req)
	return out
}

// WithViewer adds a viewer to the request context for testing handlers.
// This bypasses the session middleware and injects the viewer directly.
func WithViewer(r *http.Request, v auth.Viewer) *http.Request {
	return auth.WithTestViewer(r, v)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewFormRequest creates a POST request with a urlencoded form body.
func NewFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// Serve runs h with the request, swallowing panics from template rendering
// (templates are not booted in unit tests).
func Serve(h http.HandlerFunc, r *http.Request) *ResponseRecorder {
	rec := NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h(rec, r)
	}()
	return rec
}
