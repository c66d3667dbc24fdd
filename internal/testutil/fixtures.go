package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/casehub/internal/app/resources/seed"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Now is the fixed clock used by fixtures.
var Now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calling it again on the same request adds to the existing params.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides a running hub loaded with the embedded seed, plus
// helpers for reading and arranging its state.
type Fixtures struct {
	Hub *hub.Hub
	t   *testing.T
}

// NewFixtures starts a hub on the embedded seed with the clock pinned to
// Now. The hub is stopped when the test ends.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	s, err := seed.Load("", Now)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	st := hub.NewState(s.Catalog, s.Contributors, s.Cases, 5)
	st.Now = func() time.Time { return Now }

	h := hub.New(st, zap.NewNop())
	h.Start()
	t.Cleanup(h.Stop)
	return &Fixtures{Hub: h, t: t}
}

// Do runs fn on the hub and fails the test on error.
func (f *Fixtures) Do(fn func(*hub.State) error) {
	f.t.Helper()
	if err := f.Hub.Do(context.Background(), fn); err != nil {
		f.t.Fatalf("hub command: %v", err)
	}
}

// Case returns the case with id, failing the test if it is missing.
func (f *Fixtures) Case(id string) models.Case {
	f.t.Helper()
	var c models.Case
	f.Do(func(st *hub.State) error {
		var err error
		c, err = st.Cases.FindByID(id)
		return err
	})
	return c
}

// HasCase reports whether a case with id exists.
func (f *Fixtures) HasCase(id string) bool {
	f.t.Helper()
	var ok bool
	f.Do(func(st *hub.State) error {
		_, err := st.Cases.FindByID(id)
		ok = err == nil
		return nil
	})
	return ok
}

// FirstWithStatus returns the first seeded case in status, failing the
// test if there is none.
func (f *Fixtures) FirstWithStatus(status models.Status) models.Case {
	f.t.Helper()
	var out []models.Case
	f.Do(func(st *hub.State) error {
		out = st.Cases.ByStatus(status)
		return nil
	})
	if len(out) == 0 {
		f.t.Fatalf("seed has no %s case", status)
	}
	return out[0]
}

// CreateCase stores a new case in the IT placement under category id "1".
func (f *Fixtures) CreateCase(title string) models.Case {
	f.t.Helper()
	var c models.Case
	f.Do(func(st *hub.State) error {
		c = st.CreateCase(models.Case{
			Title:        title,
			Body:         "Body of " + title,
			Category:     models.CategoryRef{ID: "1", Name: "Documentation", Color: "#3b82f6"},
			DivisionID:   "it",
			DepartmentID: "it-dept",
			SectionID:    "it-section",
			Author:       models.Author{Name: "Test Author"},
			RootCause:    "Testing",
		})
		return nil
	})
	return c
}

// Contributor returns the roster entry with id.
func (f *Fixtures) Contributor(id string) models.Contributor {
	f.t.Helper()
	var c models.Contributor
	f.Do(func(st *hub.State) error {
		var err error
		c, err = st.Contributors.FindByID(id)
		return err
	})
	return c
}

// RecentIDs returns the recently viewed ids, most recent first.
func (f *Fixtures) RecentIDs() []string {
	f.t.Helper()
	var ids []string
	f.Do(func(st *hub.State) error {
		ids = st.Recent.IDs()
		return nil
	})
	return ids
}
