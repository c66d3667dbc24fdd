package keyboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/casehub/internal/app/features/keyboard"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/shortcuts"
	"github.com/dalemusser/casehub/internal/testutil"
	"go.uber.org/zap"
)

func press(t *testing.T, body string) (shortcuts.Result, *testutil.ResponseRecorder, *auth.SessionManager) {
	t.Helper()
	sm := testutil.NewSessionManager(t)
	router := keyboard.Routes(keyboard.NewHandler(sm, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	var res shortcuts.Result
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return res, rec, sm
}

func TestHandleKey_ToggleSavedKeepsFilters(t *testing.T) {
	res, _, _ := press(t, `{"key":"s","target":"BODY","view":"feed","query":"?category=1"}`)

	if res.Action != shortcuts.ToggleSaved {
		t.Fatalf("action = %q, want toggle_saved", res.Action)
	}
	if res.Location != "/?category=1&saved=1" {
		t.Errorf("location = %q", res.Location)
	}
}

func TestHandleKey_EscapeClearsFiltersWithNotice(t *testing.T) {
	res, rec, sm := press(t, `{"key":"Escape","view":"feed","query":"category=1&division=it"}`)

	if res.Action != shortcuts.ClearFilters || res.Location != "/" {
		t.Fatalf("result = %+v", res)
	}
	notices := testutil.NoticesAfter(sm, rec)
	if len(notices) != 1 || notices[0] != "All filters cleared: 2 filters removed" {
		t.Errorf("notices = %v", notices)
	}
}

func TestHandleKey_IgnoredWhileTyping(t *testing.T) {
	res, rec, sm := press(t, `{"key":"n","target":"input","view":"feed"}`)

	if res.Action != shortcuts.None {
		t.Errorf("action = %q, want none", res.Action)
	}
	if n := testutil.NoticesAfter(sm, rec); len(n) != 0 {
		t.Errorf("notices = %v, want none", n)
	}
}

func TestHandleKey_NewCase(t *testing.T) {
	res, _, _ := press(t, `{"key":"N","target":"BODY","view":"dashboard"}`)

	if res.Action != shortcuts.NewCase || res.Location != "/cases/new" {
		t.Errorf("result = %+v", res)
	}
}

func TestHandleKey_BadBody(t *testing.T) {
	_, rec, _ := press(t, `{not json`)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeHelp(t *testing.T) {
	router := keyboard.Routes(keyboard.NewHandler(nil, zap.NewNop()))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))

	var out []struct {
		Keys string `json:"keys"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(shortcuts.Help) {
		t.Errorf("bindings = %d, want %d", len(out), len(shortcuts.Help))
	}
}
