// internal/app/system/casefilter/casefilter.go
package casefilter

import (
	"net/url"
	"sort"
	"strings"

	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Criteria is the predicate tuple applied to the feed. A blank field (or
// false SavedOnly) matches everything.
type Criteria struct {
	CategoryID   string
	DivisionID   string
	DepartmentID string
	SectionID    string
	SavedOnly    bool
	Search       string
}

// Query string keys used by FromValues and Values.
const (
	KeyCategory   = "category"
	KeyDivision   = "division"
	KeyDepartment = "department"
	KeySection    = "section"
	KeySaved      = "saved"
	KeySearch     = "q"
)

// FromValues reads criteria from a query string.
func FromValues(v url.Values) Criteria {
	saved := strings.TrimSpace(v.Get(KeySaved))
	return Criteria{
		CategoryID:   strings.TrimSpace(v.Get(KeyCategory)),
		DivisionID:   strings.TrimSpace(v.Get(KeyDivision)),
		DepartmentID: strings.TrimSpace(v.Get(KeyDepartment)),
		SectionID:    strings.TrimSpace(v.Get(KeySection)),
		SavedOnly:    saved == "1" || strings.EqualFold(saved, "true") || saved == "on",
		Search:       strings.TrimSpace(v.Get(KeySearch)),
	}
}

// Values encodes the active predicates, omitting blank ones.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set(KeyCategory, c.CategoryID)
	set(KeyDivision, c.DivisionID)
	set(KeyDepartment, c.DepartmentID)
	set(KeySection, c.SectionID)
	if c.SavedOnly {
		v.Set(KeySaved, "1")
	}
	set(KeySearch, c.Search)
	return v
}

// ActiveCount returns how many predicates are in effect.
func (c Criteria) ActiveCount() int {
	n := 0
	for _, s := range []string{c.CategoryID, c.DivisionID, c.DepartmentID, c.SectionID, strings.TrimSpace(c.Search)} {
		if s != "" {
			n++
		}
	}
	if c.SavedOnly {
		n++
	}
	return n
}

// IsZero reports whether no predicate is set.
func (c Criteria) IsZero() bool { return c.ActiveCount() == 0 }

// WithDivision sets the division and drops department and section, which
// would otherwise point outside the new division.
func (c Criteria) WithDivision(id string) Criteria {
	c.DivisionID = id
	c.DepartmentID = ""
	c.SectionID = ""
	return c
}

// WithDepartment sets the department and drops the section.
func (c Criteria) WithDepartment(id string) Criteria {
	c.DepartmentID = id
	c.SectionID = ""
	return c
}

// Match reports whether a single case passes every predicate. Only approved
// cases ever match.
func (c Criteria) Match(cs *models.Case) bool {
	if !cs.Visible() {
		return false
	}
	if c.CategoryID != "" && cs.Category.ID != c.CategoryID {
		return false
	}
	if c.DivisionID != "" && cs.DivisionID != c.DivisionID {
		return false
	}
	if c.DepartmentID != "" && cs.DepartmentID != c.DepartmentID {
		return false
	}
	if c.SectionID != "" && cs.SectionID != c.SectionID {
		return false
	}
	if c.SavedOnly && !cs.Saved {
		return false
	}
	if q := strings.TrimSpace(c.Search); q != "" {
		return matchesText(cs, text.Fold(q))
	}
	return true
}

func matchesText(cs *models.Case, q string) bool {
	if strings.Contains(text.Fold(cs.Title), q) || strings.Contains(text.Fold(cs.Body), q) {
		return true
	}
	for _, k := range cs.Keywords {
		if strings.Contains(text.Fold(k), q) {
			return true
		}
	}
	return false
}

// Apply returns the cases that match c, newest first. Cases created in the
// same millisecond keep their collection order.
func Apply(cases []models.Case, c Criteria) []models.Case {
	out := make([]models.Case, 0, len(cases))
	for i := range cases {
		if c.Match(&cases[i]) {
			out = append(out, cases[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}
