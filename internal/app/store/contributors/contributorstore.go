// internal/app/store/contributors/contributorstore.go
package contributorstore

import (
	"errors"

	"github.com/dalemusser/casehub/internal/domain/models"
)

var ErrNotFound = errors.New("contributor not found")

// Store holds the contributor roster. The roster is static apart from the
// per-viewer Followed flag.
type Store struct {
	items []models.Contributor
}

func New(cs []models.Contributor) *Store {
	s := &Store{}
	s.Seed(cs)
	return s
}

// Seed replaces the roster.
func (s *Store) Seed(cs []models.Contributor) {
	s.items = append([]models.Contributor(nil), cs...)
}

// All returns a copy of the roster in seed order.
func (s *Store) All() []models.Contributor {
	return append([]models.Contributor(nil), s.items...)
}

func (s *Store) FindByID(id string) (models.Contributor, error) {
	for _, c := range s.items {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Contributor{}, ErrNotFound
}

// FindByName resolves a case author to a roster entry. Names are matched
// exactly, as written on the case.
func (s *Store) FindByName(name string) (models.Contributor, error) {
	for _, c := range s.items {
		if c.Name == name {
			return c, nil
		}
	}
	return models.Contributor{}, ErrNotFound
}

// ToggleFollow flips Followed and returns the new value.
func (s *Store) ToggleFollow(id string) (bool, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Followed = !s.items[i].Followed
			return s.items[i].Followed, nil
		}
	}
	return false, ErrNotFound
}

// Replace overwrites the roster entries with refreshed copies, matched by id.
// Entries not present in cs are left unchanged.
func (s *Store) Replace(cs []models.Contributor) {
	byID := make(map[string]models.Contributor, len(cs))
	for _, c := range cs {
		byID[c.ID] = c
	}
	for i := range s.items {
		if c, ok := byID[s.items[i].ID]; ok {
			s.items[i] = c
		}
	}
}
