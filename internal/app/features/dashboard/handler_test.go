package dashboard_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/casehub/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/casehub/internal/app/features/errors"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *dashboard.Handler {
	t.Helper()
	fixtures := testutil.NewFixtures(t)
	logger := zap.NewNop()
	return dashboard.NewHandler(fixtures.Hub, uierrors.NewErrorLogger(logger), logger)
}

func TestServeDashboard_EveryPersona(t *testing.T) {
	testutil.BootTemplates(t)
	handler := newTestHandler(t)

	cases := []struct {
		viewer auth.Viewer
		panel  string
	}{
		{testutil.ContributorViewer(), "My submissions"},
		{testutil.ManagerViewer(), "Manager review"},
		{testutil.DirectorViewer(), "Director approval"},
	}
	for _, tc := range cases {
		t.Run(string(tc.viewer.Role), func(t *testing.T) {
			req := testutil.WithViewer(testutil.NewRequest(http.MethodGet, "/dashboard"), tc.viewer)
			rec := testutil.Serve(handler.ServeDashboard, req)
			rec.AssertStatus(t, http.StatusOK)
			rec.AssertContains(t, "<h2>"+tc.panel+"</h2>")
			rec.AssertContains(t, "Most viewed")
		})
	}
}
