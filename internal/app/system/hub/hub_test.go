package hub_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	catalogstore "github.com/dalemusser/casehub/internal/app/store/catalog"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/domain/models"
	"go.uber.org/zap"
)

func newState() *hub.State {
	catalog := catalogstore.Data{
		Categories: []models.Category{
			{ID: "1", Name: "Documentation", Count: 1},
			{ID: "2", Name: "Troubleshooting"},
		},
	}
	cases := []models.Case{
		{ID: "a", Status: models.StatusApproved, Category: models.CategoryRef{ID: "1"},
			Attachments: []models.Attachment{{Ref: "keep"}}},
	}
	return hub.NewState(catalog, nil, cases, 5)
}

func TestDo_BeforeStartReturnsErrStopped(t *testing.T) {
	h := hub.New(newState(), zap.NewNop())
	err := h.Do(context.Background(), func(*hub.State) error { return nil })
	if !errors.Is(err, hub.ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestDo_SerializesCommands(t *testing.T) {
	h := hub.New(newState(), zap.NewNop())
	h.Start()
	defer h.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Do(context.Background(), func(s *hub.State) error {
				_, err := s.Social.RecordView("a")
				return err
			})
		}()
	}
	wg.Wait()

	var views int
	_ = h.View(context.Background(), func(s *hub.State) error {
		c, err := s.Cases.FindByID("a")
		views = c.Views
		return err
	})
	if views != 50 {
		t.Errorf("views: got %d, want 50", views)
	}
}

func TestDo_ReturnsCommandError(t *testing.T) {
	h := hub.New(newState(), zap.NewNop())
	h.Start()
	defer h.Stop()

	want := errors.New("boom")
	if err := h.Do(context.Background(), func(*hub.State) error { return want }); !errors.Is(err, want) {
		t.Errorf("expected command error, got %v", err)
	}
}

func TestDo_WaitsForAcceptedCommandAfterCancel(t *testing.T) {
	h := hub.New(newState(), zap.NewNop())
	h.Start()
	defer h.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	err := h.Do(ctx, func(s *hub.State) error {
		cancel()
		time.Sleep(10 * time.Millisecond)
		_, err := s.Social.RecordView("a")
		return err
	})
	if err != nil {
		t.Fatalf("accepted command reported %v", err)
	}

	var views int
	_ = h.View(context.Background(), func(s *hub.State) error {
		c, err := s.Cases.FindByID("a")
		views = c.Views
		return err
	})
	if views != 1 {
		t.Errorf("views: got %d, want 1", views)
	}
}

func TestDo_RecoversPanic(t *testing.T) {
	h := hub.New(newState(), zap.NewNop())
	h.Start()
	defer h.Stop()

	if err := h.Do(context.Background(), func(*hub.State) error { panic("bad") }); err == nil {
		t.Error("expected an error from a panicking command")
	}
	// the actor keeps running
	if err := h.Do(context.Background(), func(*hub.State) error { return nil }); err != nil {
		t.Errorf("hub did not survive panic: %v", err)
	}
}

func TestDo_ContextCancelledWhileWaiting(t *testing.T) {
	h := hub.New(newState(), zap.NewNop())
	h.Start()
	defer h.Stop()

	release := make(chan struct{})
	go func() {
		_ = h.Do(context.Background(), func(*hub.State) error {
			<-release
			return nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := h.Do(ctx, func(*hub.State) error { return nil })
	close(release)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestStop_ThenDo(t *testing.T) {
	h := hub.New(newState(), zap.NewNop())
	h.Start()
	h.Stop()
	h.Stop() // second stop is harmless

	if err := h.Do(context.Background(), func(*hub.State) error { return nil }); !errors.Is(err, hub.ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}

func TestState_CreateAndDeleteAdjustCategoryCount(t *testing.T) {
	st := newState()

	c := st.CreateCase(models.Case{Title: "new", Category: models.CategoryRef{ID: "1"}})
	if cat, _ := st.Catalog.Category("1"); cat.Count != 2 {
		t.Errorf("after create: count %d", cat.Count)
	}

	_, _ = st.Social.RecordView(c.ID)
	if _, err := st.DeleteCase(c.ID); err != nil {
		t.Fatalf("DeleteCase: %v", err)
	}
	if cat, _ := st.Catalog.Category("1"); cat.Count != 1 {
		t.Errorf("after delete: count %d", cat.Count)
	}
	if st.Recent.Len() != 0 {
		t.Error("deleted case still in recent list")
	}
}

func TestState_PruneBlobsKeepsReferenced(t *testing.T) {
	st := newState()
	att := st.Blobs.Put("orphan.txt", "text/plain", []byte("orphan"))

	if n := st.PruneBlobs(); n != 1 {
		t.Errorf("expected 1 pruned, got %d", n)
	}
	if _, ok := st.Blobs.Get(att.Ref); ok {
		t.Error("orphan blob kept")
	}
}

func TestState_AttachmentPrefersRecordID(t *testing.T) {
	st := newState()
	first := st.Blobs.Put("first.txt", "text/plain", []byte("same"))
	second := st.Blobs.Put("second.txt", "text/plain", []byte("same"))
	atts := []models.Attachment{first, second}
	if err := st.UpdateCase("a", casestore.Patch{Attachments: &atts}); err != nil {
		t.Fatalf("UpdateCase: %v", err)
	}

	if a, ok := st.Attachment(first.Ref, second.ID); !ok || a.Name != "second.txt" {
		t.Errorf("by id: got %+v ok=%v", a, ok)
	}
	if a, ok := st.Attachment(first.Ref, ""); !ok || a.Name != "first.txt" {
		t.Errorf("without id: got %+v ok=%v", a, ok)
	}
	if _, ok := st.Attachment("missing", ""); ok {
		t.Error("unknown ref found")
	}
}

func TestState_UpdateCaseMovesCategoryCount(t *testing.T) {
	st := newState()
	att := st.Blobs.Put("new.txt", "text/plain", []byte("new"))
	ref := models.CategoryRef{ID: "2", Name: "Troubleshooting"}
	atts := []models.Attachment{att}

	if err := st.UpdateCase("a", casestore.Patch{Category: &ref, Attachments: &atts}); err != nil {
		t.Fatalf("UpdateCase: %v", err)
	}
	if cat, _ := st.Catalog.Category("1"); cat.Count != 0 {
		t.Errorf("old category count %d, want 0", cat.Count)
	}
	if cat, _ := st.Catalog.Category("2"); cat.Count != 1 {
		t.Errorf("new category count %d, want 1", cat.Count)
	}
	c, _ := st.Cases.FindByID("a")
	if c.Status != models.StatusApproved {
		t.Errorf("status changed to %s", c.Status)
	}
	if _, ok := st.Blobs.Get(att.Ref); !ok {
		t.Error("attached blob was pruned")
	}

	if err := st.UpdateCase("missing", casestore.Patch{}); !errors.Is(err, casestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
