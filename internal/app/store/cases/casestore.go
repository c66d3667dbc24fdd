// internal/app/store/cases/casestore.go
package casestore

import (
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/casehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no case has the given id.
var ErrNotFound = errors.New("case not found")

// Store is the ordered, in-memory collection of cases. Index 0 is the most
// recently created case; Create prepends.
//
// Store is not safe for concurrent use; the hub serializes access.
type Store struct {
	items []models.Case
}

func New() *Store {
	return &Store{}
}

// Seed replaces the collection with cs, keeping the given order.
func (s *Store) Seed(cs []models.Case) {
	s.items = make([]models.Case, 0, len(cs))
	for _, c := range cs {
		s.items = append(s.items, c.Clone())
	}
}

// Create inserts a new case at the front of the collection and returns it.
//
// The caller supplies content and placement. Identity, timestamps, engagement
// counters and workflow state are always set here: every new case starts in
// pending_manager with no likes, views, stars or comments.
func (s *Store) Create(in models.Case, now time.Time) models.Case {
	c := in.Clone()
	c.ID = primitive.NewObjectIDFromTimestamp(now).Hex()
	c.CreatedAt = now.UnixMilli()
	c.LastModified = LastModifiedLabel(now)
	c.Keywords = DedupeKeywords(c.Keywords)

	c.Views = 0
	c.Stars = 0
	c.Likes = models.Toggle{}
	c.Saved = false
	c.Favorite = false
	c.Comments = nil

	c.Status = models.StatusPendingManager
	c.RejectionReason = ""
	c.ApprovedAt = 0

	s.items = append([]models.Case{c}, s.items...)
	return c.Clone()
}

// Patch carries the editable fields of a case. Nil fields are left alone.
type Patch struct {
	Title        *string
	Body         *string
	Category     *models.CategoryRef
	DivisionID   *string
	DepartmentID *string
	SectionID    *string
	Keywords     *[]string
	RootCause    *string
	Solution     *string
	Attachments  *[]models.Attachment
}

// Update shallow-merges patch into the case with the given id. Workflow
// state, engagement and identity are never touched by an update.
func (s *Store) Update(id string, patch Patch, now time.Time) error {
	return s.Mutate(id, func(c *models.Case) {
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Body != nil {
			c.Body = *patch.Body
		}
		if patch.Category != nil {
			c.Category = *patch.Category
		}
		if patch.DivisionID != nil {
			c.DivisionID = *patch.DivisionID
		}
		if patch.DepartmentID != nil {
			c.DepartmentID = *patch.DepartmentID
		}
		if patch.SectionID != nil {
			c.SectionID = *patch.SectionID
		}
		if patch.Keywords != nil {
			c.Keywords = DedupeKeywords(*patch.Keywords)
		}
		if patch.RootCause != nil {
			c.RootCause = *patch.RootCause
		}
		if patch.Solution != nil {
			c.Solution = *patch.Solution
		}
		if patch.Attachments != nil {
			c.Attachments = append([]models.Attachment(nil), (*patch.Attachments)...)
		}
		c.LastModified = LastModifiedLabel(now)
	})
}

// Delete removes the case with the given id.
func (s *Store) Delete(id string) (models.Case, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			removed := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return removed, nil
		}
	}
	return models.Case{}, ErrNotFound
}

// FindByID returns a copy of the case with the given id.
func (s *Store) FindByID(id string) (models.Case, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i].Clone(), nil
		}
	}
	return models.Case{}, ErrNotFound
}

// Mutate runs fn against the stored case with the given id. It is the only
// path through which approval and social operations change a case.
func (s *Store) Mutate(id string, fn func(*models.Case)) error {
	for i := range s.items {
		if s.items[i].ID == id {
			fn(&s.items[i])
			return nil
		}
	}
	return ErrNotFound
}

// All returns copies of every case in collection order.
func (s *Store) All() []models.Case {
	out := make([]models.Case, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].Clone()
	}
	return out
}

// ByStatus returns the cases in the given workflow state, in collection order.
func (s *Store) ByStatus(st models.Status) []models.Case {
	var out []models.Case
	for i := range s.items {
		if s.items[i].Status == st {
			out = append(out, s.items[i].Clone())
		}
	}
	return out
}

// ByAuthor returns the cases written by name, in collection order.
func (s *Store) ByAuthor(name string) []models.Case {
	var out []models.Case
	for i := range s.items {
		if s.items[i].Author.Name == name {
			out = append(out, s.items[i].Clone())
		}
	}
	return out
}

// CountByStatus tallies the collection by workflow state. Every known state
// is present in the result, zero or not.
func (s *Store) CountByStatus() map[models.Status]int {
	out := make(map[models.Status]int, len(models.Statuses))
	for _, st := range models.Statuses {
		out[st] = 0
	}
	for i := range s.items {
		out[s.items[i].Status]++
	}
	return out
}

// Len returns the number of cases held.
func (s *Store) Len() int { return len(s.items) }

// DedupeKeywords trims keywords, drops blanks and removes exact duplicates,
// keeping first-seen order.
func DedupeKeywords(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// LastModifiedLabel formats t the way cases display their edit date.
func LastModifiedLabel(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
