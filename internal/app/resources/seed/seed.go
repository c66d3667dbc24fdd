// internal/app/resources/seed/seed.go
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	catalogstore "github.com/dalemusser/casehub/internal/app/store/catalog"
	"github.com/dalemusser/casehub/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// Embedded is the seed shipped with the binary.
//
//go:embed seed.yaml
var Embedded []byte

// ErrEmpty is returned when a seed file holds no categories or divisions.
var ErrEmpty = errors.New("seed has no catalog")

// Seed is the parsed, resolved content of a seed file.
type Seed struct {
	Catalog      catalogstore.Data
	Contributors []models.Contributor
	Cases        []models.Case
}

type file struct {
	catalogstore.Data `yaml:",inline"`
	Contributors      []models.Contributor `yaml:"contributors"`
	Cases             []entry              `yaml:"cases"`
}

// entry is a case as written in the file; ages are relative to load time.
type entry struct {
	models.Case     `yaml:",inline"`
	AgeDays         int `yaml:"age_days"`
	ApprovedAgeDays int `yaml:"approved_age_days"`
}

// Load reads the seed at path, or the embedded seed when path is blank.
func Load(path string, now time.Time) (Seed, error) {
	if path == "" {
		return Parse(Embedded, now)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return Parse(b, now)
}

// Parse decodes a seed document and resolves the shorthand it allows:
// category name and color come from the category table when only the id is
// given, author avatars come from the contributor roster by name, and ages
// become absolute timestamps relative to now.
func Parse(b []byte, now time.Time) (Seed, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	if len(f.Categories) == 0 || len(f.Divisions) == 0 {
		return Seed{}, ErrEmpty
	}

	cats := make(map[string]models.Category, len(f.Categories))
	for _, c := range f.Categories {
		cats[c.ID] = c
	}
	avatars := make(map[string]string, len(f.Contributors))
	for _, c := range f.Contributors {
		avatars[c.Name] = c.Avatar
	}

	out := Seed{
		Catalog:      f.Data,
		Contributors: f.Contributors,
		Cases:        make([]models.Case, 0, len(f.Cases)),
	}
	for _, e := range f.Cases {
		c := e.Case
		if cat, ok := cats[c.Category.ID]; ok {
			if c.Category.Name == "" {
				c.Category.Name = cat.Name
			}
			if c.Category.Color == "" {
				c.Category.Color = cat.Color
			}
		}
		if c.Author.Avatar == "" {
			c.Author.Avatar = avatars[c.Author.Name]
		}
		for i := range c.Comments {
			if c.Comments[i].Author.Avatar == "" {
				c.Comments[i].Author.Avatar = avatars[c.Comments[i].Author.Name]
			}
		}

		created := now.Add(-time.Duration(e.AgeDays) * 24 * time.Hour)
		if c.CreatedAt == 0 {
			c.CreatedAt = created.UnixMilli()
		}
		if c.LastModified == "" {
			c.LastModified = casestore.LastModifiedLabel(time.UnixMilli(c.CreatedAt))
		}
		if c.Status == models.StatusApproved && c.ApprovedAt == 0 {
			c.ApprovedAt = now.Add(-time.Duration(e.ApprovedAgeDays) * 24 * time.Hour).UnixMilli()
		}
		c.Keywords = casestore.DedupeKeywords(c.Keywords)
		out.Cases = append(out.Cases, c)
	}
	return out, nil
}

// Problem is one integrity issue found by Validate.
type Problem struct {
	Kind string
	ID   string
	Msg  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s %s: %s", p.Kind, p.ID, p.Msg)
}

// Validate reports dangling catalog references, duplicate ids, cases whose
// category or placement does not resolve and cases with an unknown status.
// Problems are advisory; the hub runs with whatever was loaded.
func Validate(s Seed) []Problem {
	cat := catalogstore.New(s.Catalog)
	var out []Problem
	for _, p := range cat.Check() {
		out = append(out, Problem{Kind: p.Kind, ID: p.ID, Msg: "unknown parent " + p.Ref})
	}

	seen := make(map[string]bool, len(s.Cases))
	for _, c := range s.Cases {
		if seen[c.ID] {
			out = append(out, Problem{Kind: "case", ID: c.ID, Msg: "duplicate id"})
		}
		seen[c.ID] = true
		if !c.Status.IsValid() {
			out = append(out, Problem{Kind: "case", ID: c.ID, Msg: "unknown status " + string(c.Status)})
		}
		if _, ok := cat.Category(c.Category.ID); !ok {
			out = append(out, Problem{Kind: "case", ID: c.ID, Msg: "unknown category " + c.Category.ID})
		}
		if err := cat.ValidatePlacement(c.DivisionID, c.DepartmentID, c.SectionID); err != nil {
			out = append(out, Problem{Kind: "case", ID: c.ID, Msg: err.Error()})
		}
	}

	names := make(map[string]bool, len(s.Contributors))
	for _, c := range s.Contributors {
		if names[c.Name] {
			out = append(out, Problem{Kind: "contributor", ID: c.ID, Msg: "duplicate name " + c.Name})
		}
		names[c.Name] = true
	}
	return out
}
