// internal/domain/models/contributor.go
package models

// Contributor is one author on the static roster. Only Followed changes at
// runtime; CaseCount and TotalStars are refreshed from the live case
// collection by contributorstats.Refresh.
type Contributor struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Avatar       string `yaml:"avatar" json:"avatar"`
	DivisionID   string `yaml:"division_id" json:"division_id"`
	DepartmentID string `yaml:"department_id" json:"department_id"`
	SectionID    string `yaml:"section_id" json:"section_id"`
	TotalStars   int    `yaml:"total_stars" json:"total_stars"`
	CaseCount    int    `yaml:"case_count" json:"case_count"`
	Followed     bool   `yaml:"followed" json:"followed"`
	JoinDate     string `yaml:"join_date" json:"join_date"`
	Bio          string `yaml:"bio,omitempty" json:"bio,omitempty"`
}

// AsAuthor returns the author identity used on cases and comments.
func (c Contributor) AsAuthor() Author {
	return Author{Name: c.Name, Avatar: c.Avatar}
}
