// internal/app/store/catalog/catalogstore.go
package catalogstore

import (
	"errors"

	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// ErrPlacement is returned by ValidatePlacement when a department does not
// belong to the chosen division or a section does not belong to the chosen
// department.
var ErrPlacement = errors.New("organizational placement is inconsistent")

// Data is the full set of lookup tables held by a Store.
type Data struct {
	Divisions   []models.Division   `yaml:"divisions"`
	Departments []models.Department `yaml:"departments"`
	Sections    []models.Section    `yaml:"sections"`
	Categories  []models.Category   `yaml:"categories"`
}

// Store holds the organization catalog: divisions, departments, sections
// and categories. It is static reference data; only the cosmetic category
// counts change at runtime.
//
// Store is not safe for concurrent use; the hub serializes access.
type Store struct {
	data Data
}

// New returns a Store holding a copy of d.
func New(d Data) *Store {
	s := &Store{}
	s.Replace(d)
	return s
}

// Replace swaps the lookup tables, keeping the order given.
func (s *Store) Replace(d Data) {
	s.data = Data{
		Divisions:   append([]models.Division(nil), d.Divisions...),
		Departments: append([]models.Department(nil), d.Departments...),
		Sections:    append([]models.Section(nil), d.Sections...),
		Categories:  append([]models.Category(nil), d.Categories...),
	}
}

// Snapshot returns a copy of every table.
func (s *Store) Snapshot() Data {
	return Data{
		Divisions:   s.ListDivisions(),
		Departments: s.ListDepartments(""),
		Sections:    s.ListSections(""),
		Categories:  s.ListCategories(),
	}
}

// ListDivisions returns all divisions.
func (s *Store) ListDivisions() []models.Division {
	return append([]models.Division(nil), s.data.Divisions...)
}

// ListDepartments returns the departments of divisionID, or every department
// when divisionID is blank.
func (s *Store) ListDepartments(divisionID string) []models.Department {
	out := make([]models.Department, 0, len(s.data.Departments))
	for _, d := range s.data.Departments {
		if divisionID == "" || d.DivisionID == divisionID {
			out = append(out, d)
		}
	}
	return out
}

// ListSections returns the sections of departmentID, or every section when
// departmentID is blank.
func (s *Store) ListSections(departmentID string) []models.Section {
	out := make([]models.Section, 0, len(s.data.Sections))
	for _, sec := range s.data.Sections {
		if departmentID == "" || sec.DepartmentID == departmentID {
			out = append(out, sec)
		}
	}
	return out
}

// ListCategories returns all categories.
func (s *Store) ListCategories() []models.Category {
	return append([]models.Category(nil), s.data.Categories...)
}

// Division looks up a division by id.
func (s *Store) Division(id string) (models.Division, bool) {
	for _, d := range s.data.Divisions {
		if d.ID == id {
			return d, true
		}
	}
	return models.Division{}, false
}

// Department looks up a department by id.
func (s *Store) Department(id string) (models.Department, bool) {
	for _, d := range s.data.Departments {
		if d.ID == id {
			return d, true
		}
	}
	return models.Department{}, false
}

// Section looks up a section by id.
func (s *Store) Section(id string) (models.Section, bool) {
	for _, sec := range s.data.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return models.Section{}, false
}

// Category looks up a category by id.
func (s *Store) Category(id string) (models.Category, bool) {
	for _, c := range s.data.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryByName looks up a category by name, ignoring case and diacritics.
func (s *Store) CategoryByName(name string) (models.Category, bool) {
	want := text.Fold(name)
	for _, c := range s.data.Categories {
		if text.Fold(c.Name) == want {
			return c, true
		}
	}
	return models.Category{}, false
}

// AdjustCategoryCount changes the cosmetic count of a category by delta,
// never going below zero. Unknown ids are ignored.
func (s *Store) AdjustCategoryCount(id string, delta int) {
	for i := range s.data.Categories {
		if s.data.Categories[i].ID != id {
			continue
		}
		n := s.data.Categories[i].Count + delta
		if n < 0 {
			n = 0
		}
		s.data.Categories[i].Count = n
		return
	}
}

// ValidatePlacement checks that the department belongs to the division and
// the section to the department. It is used by the case editor; the case
// store itself never re-validates placement.
func (s *Store) ValidatePlacement(divisionID, departmentID, sectionID string) error {
	if _, ok := s.Division(divisionID); !ok {
		return ErrPlacement
	}
	dept, ok := s.Department(departmentID)
	if !ok || dept.DivisionID != divisionID {
		return ErrPlacement
	}
	sec, ok := s.Section(sectionID)
	if !ok || sec.DepartmentID != departmentID {
		return ErrPlacement
	}
	return nil
}

// Problem describes a dangling reference found by Check.
type Problem struct {
	Kind string // "department" or "section"
	ID   string
	Ref  string // the missing parent id
}

// Check reports departments whose division is missing and sections whose
// department is missing.
func (s *Store) Check() []Problem {
	var out []Problem
	for _, d := range s.data.Departments {
		if _, ok := s.Division(d.DivisionID); !ok {
			out = append(out, Problem{Kind: "department", ID: d.ID, Ref: d.DivisionID})
		}
	}
	for _, sec := range s.data.Sections {
		if _, ok := s.Department(sec.DepartmentID); !ok {
			out = append(out, Problem{Kind: "section", ID: sec.ID, Ref: sec.DepartmentID})
		}
	}
	return out
}
