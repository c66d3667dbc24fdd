package catalogstore_test

import (
	"errors"
	"testing"

	catalogstore "github.com/dalemusser/casehub/internal/app/store/catalog"
	"github.com/dalemusser/casehub/internal/domain/models"
)

func testData() catalogstore.Data {
	return catalogstore.Data{
		Divisions: []models.Division{
			{ID: "it", Name: "IT"},
			{ID: "hr", Name: "HR & Admin"},
		},
		Departments: []models.Department{
			{ID: "app-ops", Name: "Applications Operations", DivisionID: "it"},
			{ID: "it-dept", Name: "IT", DivisionID: "it"},
			{ID: "hr-admin", Name: "HR & Admin", DivisionID: "hr"},
		},
		Sections: []models.Section{
			{ID: "dba", Name: "DBA", DepartmentID: "app-ops"},
			{ID: "it-section", Name: "IT", DepartmentID: "it-dept"},
			{ID: "payroll", Name: "Payroll", DepartmentID: "hr-admin"},
		},
		Categories: []models.Category{
			{ID: "1", Name: "Documentation", Color: "#3b82f6", Count: 5},
			{ID: "5", Name: "Troubleshooting", Color: "#ef4444", Count: 0},
		},
	}
}

func TestListDepartments_FiltersByDivision(t *testing.T) {
	s := catalogstore.New(testData())

	got := s.ListDepartments("it")
	if len(got) != 2 {
		t.Fatalf("expected 2 IT departments, got %d", len(got))
	}
	for _, d := range got {
		if d.DivisionID != "it" {
			t.Errorf("department %q belongs to %q, want it", d.ID, d.DivisionID)
		}
	}

	if all := s.ListDepartments(""); len(all) != 3 {
		t.Errorf("expected all 3 departments with blank division, got %d", len(all))
	}
}

func TestListSections_FiltersByDepartment(t *testing.T) {
	s := catalogstore.New(testData())

	got := s.ListSections("hr-admin")
	if len(got) != 1 || got[0].ID != "payroll" {
		t.Fatalf("expected [payroll], got %+v", got)
	}
	if all := s.ListSections(""); len(all) != 3 {
		t.Errorf("expected 3 sections, got %d", len(all))
	}
}

func TestCategoryByName_IgnoresCase(t *testing.T) {
	s := catalogstore.New(testData())

	cat, ok := s.CategoryByName("troubleshooting")
	if !ok {
		t.Fatal("expected to find Troubleshooting")
	}
	if cat.ID != "5" {
		t.Errorf("expected id 5, got %q", cat.ID)
	}

	if _, ok := s.CategoryByName("Nope"); ok {
		t.Error("expected miss for unknown category")
	}
}

func TestAdjustCategoryCount_FloorsAtZero(t *testing.T) {
	s := catalogstore.New(testData())

	s.AdjustCategoryCount("5", -1)
	cat, _ := s.Category("5")
	if cat.Count != 0 {
		t.Errorf("expected count floored at 0, got %d", cat.Count)
	}

	s.AdjustCategoryCount("1", 1)
	cat, _ = s.Category("1")
	if cat.Count != 6 {
		t.Errorf("expected count 6, got %d", cat.Count)
	}

	// unknown ids are ignored
	s.AdjustCategoryCount("missing", 3)
}

func TestValidatePlacement(t *testing.T) {
	s := catalogstore.New(testData())

	tests := []struct {
		name             string
		div, dept, sectn string
		wantErr          bool
	}{
		{"consistent", "it", "app-ops", "dba", false},
		{"dept from other division", "hr", "app-ops", "dba", true},
		{"section from other dept", "it", "it-dept", "dba", true},
		{"unknown division", "zz", "app-ops", "dba", true},
		{"blank section", "it", "app-ops", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidatePlacement(tt.div, tt.dept, tt.sectn)
			if tt.wantErr && !errors.Is(err, catalogstore.ErrPlacement) {
				t.Errorf("expected ErrPlacement, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheck_ReportsDanglingParents(t *testing.T) {
	d := testData()
	d.Departments = append(d.Departments, models.Department{ID: "ghost", DivisionID: "nowhere"})
	d.Sections = append(d.Sections, models.Section{ID: "orphan", DepartmentID: "gone"})
	s := catalogstore.New(d)

	problems := s.Check()
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %+v", len(problems), problems)
	}
	if problems[0].Kind != "department" || problems[0].ID != "ghost" {
		t.Errorf("unexpected first problem: %+v", problems[0])
	}
	if problems[1].Kind != "section" || problems[1].Ref != "gone" {
		t.Errorf("unexpected second problem: %+v", problems[1])
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := catalogstore.New(testData())

	snap := s.Snapshot()
	snap.Categories[0].Name = "Changed"

	cat, _ := s.Category("1")
	if cat.Name != "Documentation" {
		t.Errorf("snapshot mutation leaked into store: %q", cat.Name)
	}
}
