package approval_test

import (
	"errors"
	"testing"
	"time"

	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	"github.com/dalemusser/casehub/internal/app/system/approval"
	"github.com/dalemusser/casehub/internal/domain/models"
)

func TestApply_TransitionTable(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    models.Status
		action  approval.Action
		reason  string
		want    models.Status
		wantErr error
	}{
		{"submit new", models.StatusDraft, approval.ActionSubmit, "", models.StatusPendingManager, nil},
		{"manager approve", models.StatusPendingManager, approval.ActionManagerApprove, "", models.StatusPendingDirector, nil},
		{"manager reject", models.StatusPendingManager, approval.ActionManagerReject, "duplicate", models.StatusRejected, nil},
		{"director approve", models.StatusPendingDirector, approval.ActionDirectorApprove, "", models.StatusApproved, nil},
		{"director send back", models.StatusPendingDirector, approval.ActionDirectorReject, "needs detail", models.StatusPendingManager, nil},
		{"manager reject blank", models.StatusPendingManager, approval.ActionManagerReject, "   ", models.StatusPendingManager, approval.ErrReasonRequired},
		{"director reject blank", models.StatusPendingDirector, approval.ActionDirectorReject, "", models.StatusPendingDirector, approval.ErrReasonRequired},
		{"approved is terminal", models.StatusApproved, approval.ActionDirectorReject, "x", models.StatusApproved, approval.ErrInvalidTransition},
		{"rejected is terminal", models.StatusRejected, approval.ActionManagerApprove, "", models.StatusRejected, approval.ErrInvalidTransition},
		{"director skips manager", models.StatusPendingManager, approval.ActionDirectorApprove, "", models.StatusPendingManager, approval.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.Case{ID: "c1", Status: tt.from}
			err := approval.Apply(&c, tt.action, tt.reason, now)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Status != tt.want {
				t.Errorf("status: got %q, want %q", c.Status, tt.want)
			}
		})
	}
}

func TestApply_DirectorApproveSetsApprovedAt(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	c := models.Case{Status: models.StatusPendingDirector, RejectionReason: "sent back once"}

	if err := approval.Apply(&c, approval.ActionDirectorApprove, "", now); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if c.ApprovedAt != now.UnixMilli() {
		t.Errorf("ApprovedAt: got %d, want %d", c.ApprovedAt, now.UnixMilli())
	}
	if c.RejectionReason != "" {
		t.Errorf("expected rejection reason cleared, got %q", c.RejectionReason)
	}
}

func TestApply_RejectRecordsReason(t *testing.T) {
	c := models.Case{Status: models.StatusPendingManager}
	if err := approval.Apply(&c, approval.ActionManagerReject, "  out of date ", time.Now()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if c.RejectionReason != "out of date" {
		t.Errorf("reason: got %q", c.RejectionReason)
	}
	if c.ApprovedAt != 0 {
		t.Error("ApprovedAt should stay unset on reject")
	}
}

func TestQueue_SeparatesStages(t *testing.T) {
	cases := []models.Case{
		{ID: "a", Status: models.StatusPendingManager},
		{ID: "b", Status: models.StatusPendingDirector},
		{ID: "c", Status: models.StatusApproved},
		{ID: "d", Status: models.StatusPendingManager},
	}

	mgr := approval.Queue(approval.StageManager, cases)
	if len(mgr) != 2 || mgr[0].ID != "a" || mgr[1].ID != "d" {
		t.Errorf("manager queue: %+v", mgr)
	}
	dir := approval.Queue(approval.StageDirector, cases)
	if len(dir) != 1 || dir[0].ID != "b" {
		t.Errorf("director queue: %+v", dir)
	}
	if q := approval.Queue("other", cases); q != nil {
		t.Errorf("unknown stage should give nil, got %+v", q)
	}
}

func TestService_ApproveAffectsOnlyTarget(t *testing.T) {
	store := casestore.New()
	store.Seed([]models.Case{
		{ID: "a", Status: models.StatusPendingDirector},
		{ID: "b", Status: models.StatusPendingDirector},
	})
	svc := approval.NewService(store)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }

	got, err := svc.Approve(approval.StageDirector, "a")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if got.Status != models.StatusApproved || got.ApprovedAt != fixed.UnixMilli() {
		t.Errorf("unexpected result: %+v", got)
	}

	other, _ := store.FindByID("b")
	if other.Status != models.StatusPendingDirector || other.ApprovedAt != 0 {
		t.Errorf("other case changed: %+v", other)
	}
}

func TestService_RejectWithoutReasonLeavesCase(t *testing.T) {
	store := casestore.New()
	store.Seed([]models.Case{{ID: "a", Status: models.StatusPendingManager}})
	svc := approval.NewService(store)

	if _, err := svc.Reject(approval.StageManager, "a", ""); !errors.Is(err, approval.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
	c, _ := store.FindByID("a")
	if c.Status != models.StatusPendingManager {
		t.Errorf("status changed: %q", c.Status)
	}
}

func TestService_UnknownCase(t *testing.T) {
	svc := approval.NewService(casestore.New())
	if _, err := svc.Approve(approval.StageManager, "missing"); !errors.Is(err, casestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
