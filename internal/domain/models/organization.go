// internal/domain/models/organization.go
package models

// Division is the top level of the organization hierarchy.
type Division struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

// Department belongs to a Division.
type Department struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	DivisionID string `yaml:"division_id" json:"division_id"`
	Count      int    `yaml:"count" json:"count"`
}

// Section belongs to a Department.
type Section struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	DepartmentID string `yaml:"department_id" json:"department_id"`
	Count        int    `yaml:"count" json:"count"`
}

// Category is a flat case classification. Count is cosmetic and is not kept
// consistent with the live case collection.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
	Count int    `yaml:"count" json:"count"`
}

// Ref returns the snapshot stored on a Case.
func (c Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name, Color: c.Color}
}
