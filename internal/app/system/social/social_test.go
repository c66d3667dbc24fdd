package social_test

import (
	"errors"
	"testing"
	"time"

	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	"github.com/dalemusser/casehub/internal/app/system/social"
	"github.com/dalemusser/casehub/internal/domain/models"
)

func newService(t *testing.T) *social.Service {
	t.Helper()
	store := casestore.New()
	store.Seed([]models.Case{
		{ID: "a", Status: models.StatusApproved, Likes: models.Toggle{Count: 3}},
		{ID: "b", Status: models.StatusApproved},
		{ID: "c", Status: models.StatusApproved},
		{ID: "d", Status: models.StatusApproved},
		{ID: "e", Status: models.StatusApproved},
		{ID: "f", Status: models.StatusApproved},
	})
	return social.NewService(store, social.NewRecent(social.DefaultRecentLimit))
}

func TestToggleLike_TwiceRestoresCount(t *testing.T) {
	s := newService(t)

	first, err := s.ToggleLike("a")
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !first.On || first.Count != 4 {
		t.Errorf("after first toggle: %+v", first)
	}
	second, _ := s.ToggleLike("a")
	if second.On || second.Count != 3 {
		t.Errorf("after second toggle: %+v", second)
	}
}

func TestToggleSaveAndFavorite(t *testing.T) {
	s := newService(t)

	if on, _ := s.ToggleSave("b"); !on {
		t.Error("expected saved")
	}
	if on, _ := s.ToggleFavorite("b"); !on {
		t.Error("expected favorite")
	}
	if on, _ := s.ToggleSave("b"); on {
		t.Error("expected unsaved")
	}
	if _, err := s.ToggleSave("zzz"); !errors.Is(err, casestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddComment_AppendsInOrder(t *testing.T) {
	s := newService(t)
	author := models.Author{Name: "Sarah Chen"}
	now := time.Now()

	c1, err := s.AddComment("a", author, "first", now)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	c2, _ := s.AddComment("a", author, "  second  ", now)

	if c1.ID == "" || c1.ID == c2.ID {
		t.Errorf("expected distinct ids, got %q and %q", c1.ID, c2.ID)
	}
	if c2.Body != "second" {
		t.Errorf("body not trimmed: %q", c2.Body)
	}
	if c1.Likes.On || c1.Likes.Count != 0 {
		t.Errorf("new comment should have zero likes: %+v", c1.Likes)
	}

	got, _ := s.Cases.FindByID("a")
	if len(got.Comments) != 2 || got.Comments[0].ID != c1.ID || got.Comments[1].ID != c2.ID {
		t.Errorf("unexpected comments: %+v", got.Comments)
	}
}

func TestAddComment_RejectsBlank(t *testing.T) {
	s := newService(t)
	if _, err := s.AddComment("a", models.Author{}, "   ", time.Now()); !errors.Is(err, social.ErrEmptyComment) {
		t.Errorf("expected ErrEmptyComment, got %v", err)
	}
	got, _ := s.Cases.FindByID("a")
	if len(got.Comments) != 0 {
		t.Error("blank comment was stored")
	}
}

func TestToggleCommentLike(t *testing.T) {
	s := newService(t)
	cm, _ := s.AddComment("a", models.Author{Name: "x"}, "hello", time.Now())

	tg, err := s.ToggleCommentLike("a", cm.ID)
	if err != nil || !tg.On || tg.Count != 1 {
		t.Fatalf("first toggle: %+v %v", tg, err)
	}
	tg, _ = s.ToggleCommentLike("a", cm.ID)
	if tg.On || tg.Count != 0 {
		t.Errorf("second toggle: %+v", tg)
	}
	if _, err := s.ToggleCommentLike("a", "nope"); !errors.Is(err, social.ErrCommentNotFound) {
		t.Errorf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestRecordView_PromotesWithoutDuplicating(t *testing.T) {
	s := newService(t)

	for _, id := range []string{"a", "b", "a", "c"} {
		if _, err := s.RecordView(id); err != nil {
			t.Fatalf("RecordView(%s): %v", id, err)
		}
	}

	got := s.Recent.IDs()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	a, _ := s.Cases.FindByID("a")
	if a.Views != 2 {
		t.Errorf("views: got %d, want 2", a.Views)
	}
}

func TestRecent_NeverExceedsCap(t *testing.T) {
	s := newService(t)
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		_, _ = s.RecordView(id)
	}
	got := s.Recent.IDs()
	if len(got) != social.DefaultRecentLimit {
		t.Fatalf("len: got %d", len(got))
	}
	if got[0] != "f" || got[len(got)-1] != "b" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestRecentCases_DropsDeleted(t *testing.T) {
	s := newService(t)
	_, _ = s.RecordView("a")
	_, _ = s.RecordView("b")

	if _, err := s.Cases.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got := s.RecentCases()
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("unexpected recent cases: %+v", got)
	}
	if s.Recent.Len() != 1 {
		t.Errorf("deleted id should be pruned, len %d", s.Recent.Len())
	}
}
