package persona_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/casehub/internal/app/features/persona"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*persona.Handler, *auth.SessionManager) {
	t.Helper()
	sm := testutil.NewSessionManager(t)
	return persona.NewHandler(sm, zap.NewNop()), sm
}

// roleAfter replays the response cookies through the session middleware.
func roleAfter(sm *auth.SessionManager, rec *testutil.ResponseRecorder) auth.Role {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	last := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		last[c.Name] = c
	}
	for _, c := range last {
		req.AddCookie(c)
	}
	var role auth.Role
	sm.LoadViewer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		role = auth.CurrentViewer(r).Role
	})).ServeHTTP(httptest.NewRecorder(), req)
	return role
}

func TestServeViewer_ReturnsJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithViewer(testutil.NewRequest(http.MethodGet, "/persona"), testutil.ManagerViewer())
	rec := testutil.NewRecorder()
	h.ServeViewer(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["name"] != "Current User" {
		t.Errorf("name = %v, want Current User", resp["name"])
	}
	if resp["role"] != "manager" || resp["role_label"] != "Manager" {
		t.Errorf("role = %v/%v, want manager/Manager", resp["role"], resp["role_label"])
	}
	if resp["can_review"] != true {
		t.Errorf("can_review = %v, want true", resp["can_review"])
	}
	if resp["division_id"] != "it" {
		t.Errorf("division_id = %v, want it", resp["division_id"])
	}
}

func TestHandleSwitch_ManagerLandsOnQueue(t *testing.T) {
	h, sm := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleSwitch(rec, testutil.NewFormRequest("/persona", url.Values{"role": {"Manager"}}))

	rec.AssertRedirect(t, "/approvals/manager")
	if got := roleAfter(sm, rec); got != auth.RoleManager {
		t.Errorf("role = %s, want manager", got)
	}
	notices := testutil.NoticesAfter(sm, rec)
	if len(notices) != 1 || notices[0] != "Now acting as Manager" {
		t.Errorf("notices = %v", notices)
	}
}

func TestHandleSwitch_DirectorLandsOnQueue(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleSwitch(rec, testutil.NewFormRequest("/persona", url.Values{"role": {"director"}}))

	rec.AssertRedirect(t, "/approvals/director")
}

func TestHandleSwitch_ContributorLeavesQueue(t *testing.T) {
	h, sm := newTestHandler(t)

	form := url.Values{"role": {"contributor"}, "return": {"/approvals/manager"}}
	rec := testutil.NewRecorder()
	h.HandleSwitch(rec, testutil.NewFormRequest("/persona", form))

	rec.AssertRedirect(t, "/")
	if got := roleAfter(sm, rec); got != auth.RoleContributor {
		t.Errorf("role = %s, want contributor", got)
	}
}

func TestHandleSwitch_ContributorReturnsToPage(t *testing.T) {
	h, _ := newTestHandler(t)

	form := url.Values{"role": {"contributor"}, "return": {"/contributors"}}
	rec := testutil.NewRecorder()
	h.HandleSwitch(rec, testutil.NewFormRequest("/persona", form))

	rec.AssertRedirect(t, "/contributors")
}

func TestHandleSwitch_UnknownRole(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleSwitch(rec, testutil.NewFormRequest("/persona", url.Values{"role": {"admin"}}))

	rec.AssertStatus(t, http.StatusBadRequest)
}
