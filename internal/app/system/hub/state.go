// internal/app/system/hub/state.go
package hub

import (
	"time"

	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	catalogstore "github.com/dalemusser/casehub/internal/app/store/catalog"
	contributorstore "github.com/dalemusser/casehub/internal/app/store/contributors"
	"github.com/dalemusser/casehub/internal/app/system/approval"
	"github.com/dalemusser/casehub/internal/app/system/attachments"
	"github.com/dalemusser/casehub/internal/app/system/contributorstats"
	"github.com/dalemusser/casehub/internal/app/system/social"
	"github.com/dalemusser/casehub/internal/domain/models"
)

// State is the whole application state of one UI session. Only the hub's
// actor goroutine touches it.
type State struct {
	Catalog      *catalogstore.Store
	Cases        *casestore.Store
	Contributors *contributorstore.Store
	Recent       *social.Recent
	Blobs        *attachments.Blobs

	Approval *approval.Service
	Social   *social.Service

	Now func() time.Time
}

// NewState wires the stores and services around the seed data.
func NewState(catalog catalogstore.Data, contributors []models.Contributor, cases []models.Case, recentLimit int) *State {
	st := &State{
		Catalog:      catalogstore.New(catalog),
		Cases:        casestore.New(),
		Contributors: contributorstore.New(contributors),
		Recent:       social.NewRecent(recentLimit),
		Blobs:        attachments.NewBlobs(),
		Now:          time.Now,
	}
	st.Cases.Seed(cases)
	st.Approval = approval.NewService(st.Cases)
	st.Approval.Now = func() time.Time { return st.Now() }
	st.Social = social.NewService(st.Cases, st.Recent)
	return st
}

// Load replaces the seed-derived collections, keeping uploaded blobs. The
// recently viewed list is cleared since its ids may no longer resolve.
func (s *State) Load(catalog catalogstore.Data, contributors []models.Contributor, cases []models.Case) {
	s.Catalog.Replace(catalog)
	s.Contributors.Seed(contributors)
	s.Cases.Seed(cases)
	s.Recent.Reset()
}

// ContributorRoster returns the roster with CaseCount and TotalStars
// recomputed from the live cases.
func (s *State) ContributorRoster() []models.Contributor {
	return contributorstats.Refresh(s.Contributors.All(), s.Cases.All())
}

// CreateCase stores a new case and bumps its category count.
func (s *State) CreateCase(in models.Case) models.Case {
	c := s.Cases.Create(in, s.Now())
	s.Catalog.AdjustCategoryCount(c.Category.ID, 1)
	return c
}

// UpdateCase applies an editor patch, moving the category count when the
// category changes, and prunes attachment content the edit dropped.
func (s *State) UpdateCase(id string, p casestore.Patch) error {
	before, err := s.Cases.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.Cases.Update(id, p, s.Now()); err != nil {
		return err
	}
	if p.Category != nil && p.Category.ID != before.Category.ID {
		s.Catalog.AdjustCategoryCount(before.Category.ID, -1)
		s.Catalog.AdjustCategoryCount(p.Category.ID, 1)
	}
	s.PruneBlobs()
	return nil
}

// DeleteCase removes a case, lowers its category count, drops it from the
// recently viewed list and releases attachment content no other case uses.
func (s *State) DeleteCase(id string) (models.Case, error) {
	c, err := s.Cases.Delete(id)
	if err != nil {
		return models.Case{}, err
	}
	s.Catalog.AdjustCategoryCount(c.Category.ID, -1)
	s.Social.Forget(id)
	s.PruneBlobs()
	return c, nil
}

// Attachment finds the attachment record for content ref. The record with
// the given id wins; otherwise the first record pointing at ref is used.
func (s *State) Attachment(ref, id string) (models.Attachment, bool) {
	var (
		first models.Attachment
		found bool
	)
	for _, c := range s.Cases.All() {
		for _, a := range c.Attachments {
			if a.Ref != ref {
				continue
			}
			if id != "" && a.ID == id {
				return a, true
			}
			if !found {
				first, found = a, true
			}
		}
	}
	return first, found
}

// PruneBlobs drops attachment content that no case references.
func (s *State) PruneBlobs() int {
	keep := make(map[string]bool)
	for _, c := range s.Cases.All() {
		for _, a := range c.Attachments {
			keep[a.Ref] = true
		}
	}
	return s.Blobs.Prune(keep)
}
