package catalog_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/casehub/internal/app/features/catalog"
	"github.com/dalemusser/casehub/internal/testutil"
	"go.uber.org/zap"
)

type entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

func get(t *testing.T, target string) []entry {
	t.Helper()
	fixtures := testutil.NewFixtures(t)
	router := catalog.Routes(catalog.NewHandler(fixtures.Hub, zap.NewNop()))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, target))
	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var out []entry
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestServeDepartments_FiltersByDivision(t *testing.T) {
	out := get(t, "/departments?division=it")
	if len(out) != 8 {
		t.Fatalf("departments = %d, want 8", len(out))
	}
	for _, d := range out {
		if d.ParentID != "it" {
			t.Errorf("department %s has parent %s", d.ID, d.ParentID)
		}
	}
}

func TestServeDepartments_AllWithoutDivision(t *testing.T) {
	if out := get(t, "/departments"); len(out) <= 8 {
		t.Errorf("departments = %d, want every department", len(out))
	}
}

func TestServeSections_FiltersByDepartment(t *testing.T) {
	out := get(t, "/sections?department=rno")
	if len(out) == 0 {
		t.Fatal("expected sections for rno")
	}
	for _, s := range out {
		if s.ParentID != "rno" {
			t.Errorf("section %s has parent %s", s.ID, s.ParentID)
		}
	}
}

func TestServeSections_UnknownDepartmentIsEmpty(t *testing.T) {
	if out := get(t, "/sections?department=nope"); len(out) != 0 {
		t.Errorf("sections = %v, want none", out)
	}
}

func TestServeDivisions(t *testing.T) {
	out := get(t, "/divisions")
	if len(out) != 9 {
		t.Errorf("divisions = %d, want 9", len(out))
	}
}

func TestServeCategories_IncludesCounts(t *testing.T) {
	fixtures := testutil.NewFixtures(t)
	router := catalog.Routes(catalog.NewHandler(fixtures.Hub, zap.NewNop()))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/categories"))

	var out []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("categories = %d, want 5", len(out))
	}
	if out[0].Name != "Documentation" || out[0].Count != 5 {
		t.Errorf("first category = %+v, want Documentation/5", out[0])
	}
}
