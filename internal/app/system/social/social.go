// internal/app/system/social/social.go
package social

import (
	"errors"
	"strings"
	"time"

	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/google/uuid"
)

var (
	// ErrEmptyComment is returned when a comment body is blank.
	ErrEmptyComment = errors.New("comment text is required")
	// ErrCommentNotFound is returned when a case has no comment with the id.
	ErrCommentNotFound = errors.New("comment not found")
)

// Service applies the viewer's engagement to cases in a case store. Every
// toggle moves the flag and its counter together.
type Service struct {
	Cases  *casestore.Store
	Recent *Recent
}

func NewService(cases *casestore.Store, recent *Recent) *Service {
	return &Service{Cases: cases, Recent: recent}
}

// ToggleLike flips the viewer's like and returns the updated state.
func (s *Service) ToggleLike(id string) (models.Toggle, error) {
	var out models.Toggle
	err := s.Cases.Mutate(id, func(c *models.Case) {
		c.Likes.Flip()
		out = c.Likes
	})
	return out, err
}

// ToggleSave flips the saved flag and returns the new value.
func (s *Service) ToggleSave(id string) (bool, error) {
	var out bool
	err := s.Cases.Mutate(id, func(c *models.Case) {
		c.Saved = !c.Saved
		out = c.Saved
	})
	return out, err
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Service) ToggleFavorite(id string) (bool, error) {
	var out bool
	err := s.Cases.Mutate(id, func(c *models.Case) {
		c.Favorite = !c.Favorite
		out = c.Favorite
	})
	return out, err
}

// AddComment appends a comment by author to the end of the case's thread.
func (s *Service) AddComment(id string, author models.Author, body string, now time.Time) (models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.Comment{}, ErrEmptyComment
	}
	cm := models.Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Body:      body,
		Timestamp: CommentTimestamp(now),
	}
	err := s.Cases.Mutate(id, func(c *models.Case) {
		c.Comments = append(c.Comments, cm)
	})
	if err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// ToggleCommentLike flips the viewer's like on one comment of one case.
func (s *Service) ToggleCommentLike(caseID, commentID string) (models.Toggle, error) {
	var (
		out   models.Toggle
		found bool
	)
	err := s.Cases.Mutate(caseID, func(c *models.Case) {
		for i := range c.Comments {
			if c.Comments[i].ID == commentID {
				c.Comments[i].Likes.Flip()
				out = c.Comments[i].Likes
				found = true
				return
			}
		}
	})
	if err != nil {
		return models.Toggle{}, err
	}
	if !found {
		return models.Toggle{}, ErrCommentNotFound
	}
	return out, nil
}

// RecordView counts one fresh open of the case and promotes it in the
// recently viewed list. Callers skip it when the case is reopened from a
// cached reference.
func (s *Service) RecordView(id string) (int, error) {
	var views int
	err := s.Cases.Mutate(id, func(c *models.Case) {
		c.Views++
		views = c.Views
	})
	if err != nil {
		return 0, err
	}
	if s.Recent != nil {
		s.Recent.Touch(id)
	}
	return views, nil
}

// Forget removes a deleted case from the viewer's history.
func (s *Service) Forget(id string) {
	if s.Recent != nil {
		s.Recent.Remove(id)
	}
}

// RecentCases resolves the recently viewed ids against the store, most
// recent first. Ids that no longer resolve are dropped from the list.
func (s *Service) RecentCases() []models.Case {
	if s.Recent == nil {
		return nil
	}
	var out []models.Case
	for _, id := range s.Recent.IDs() {
		c, err := s.Cases.FindByID(id)
		if err != nil {
			s.Recent.Remove(id)
			continue
		}
		out = append(out, c)
	}
	return out
}

// CommentTimestamp formats the display time stored on a comment.
func CommentTimestamp(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}
