package navigation_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/casehub/internal/app/system/navigation"
)

func TestSafeBackURL(t *testing.T) {
	tests := []struct {
		name   string
		target string
		form   url.Values
		opts   navigation.BackURLOptions
		want   string
	}{
		{"query return", "/x?return=/list", nil, navigation.CaseActionBackURL, "/list"},
		{"form return", "/x", url.Values{"return": {"/cases/abc"}}, navigation.CaseActionBackURL, "/cases/abc"},
		{"missing", "/x", nil, navigation.CaseActionBackURL, "/"},
		{"external rejected", "/x?return=https://evil.example", nil, navigation.CaseActionBackURL, "/"},
		{"excluded subpath", "/x?return=/cases/abc/edit", nil, navigation.CaseActionBackURL, "/"},
		{"prefix mismatch", "/x?return=/list", nil, navigation.ApprovalsBackURL, "/approvals/manager"},
		{"prefix ok", "/x?return=/approvals/director", nil, navigation.ApprovalsBackURL, "/approvals/director"},
		{"excluded id", "/x?return=/cases/abc", nil,
			navigation.BackURLOptions{ExcludedID: "abc", Fallback: "/"}, "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.form != nil {
				body = strings.NewReader(tt.form.Encode())
			} else {
				body = strings.NewReader("")
			}
			r := httptest.NewRequest("POST", tt.target, body)
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if got := navigation.SafeBackURL(r, tt.opts); got != tt.want {
				t.Errorf("SafeBackURL = %q, want %q", got, tt.want)
			}
		})
	}
}
