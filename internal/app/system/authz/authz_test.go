package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/casehub/internal/app/system/approval"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/authz"
)

func withRole(role auth.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/approvals/manager", nil)
	return auth.WithTestViewer(req, auth.Viewer{Name: "Test", Role: role})
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := authz.RequireRole(auth.RoleManager)(ok)

	tests := []struct {
		name   string
		role   auth.Role
		accept string
		hx     bool
		want   int
	}{
		{"allowed", auth.RoleManager, "", false, http.StatusNoContent},
		{"html redirect", auth.RoleContributor, "text/html", false, http.StatusSeeOther},
		{"api forbidden", auth.RoleDirector, "application/json", false, http.StatusForbidden},
		{"htmx", auth.RoleContributor, "text/html", true, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withRole(tt.role)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if tt.hx {
				req.Header.Set("HX-Request", "true")
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusSeeOther && rec.Header().Get("Location") != authz.ForbiddenPath {
				t.Errorf("Location = %q", rec.Header().Get("Location"))
			}
			if tt.hx && rec.Header().Get("HX-Redirect") != authz.ForbiddenPath {
				t.Errorf("HX-Redirect = %q", rec.Header().Get("HX-Redirect"))
			}
		})
	}
}

func TestCanReview(t *testing.T) {
	if !authz.CanReview(withRole(auth.RoleManager), approval.StageManager) {
		t.Error("manager cannot review manager queue")
	}
	if authz.CanReview(withRole(auth.RoleManager), approval.StageDirector) {
		t.Error("manager can review director queue")
	}
	if authz.CanReview(withRole(auth.RoleDirector), approval.Stage("bogus")) {
		t.Error("unknown stage reviewable")
	}
}

func TestHomeQueue(t *testing.T) {
	if got := authz.HomeQueue(withRole(auth.RoleDirector)); got != "/approvals/director" {
		t.Errorf("director queue = %q", got)
	}
	if got := authz.HomeQueue(withRole(auth.RoleContributor)); got != "" {
		t.Errorf("contributor queue = %q", got)
	}
}
