// internal/app/system/approval/approval.go
package approval

import (
	"errors"
	"fmt"
	"strings"
	"time"

	casestore "github.com/dalemusser/casehub/internal/app/store/cases"
	"github.com/dalemusser/casehub/internal/domain/models"
)

// Action is a workflow event applied to a case.
type Action string

const (
	ActionSubmit          Action = "submit"
	ActionManagerApprove  Action = "manager_approve"
	ActionManagerReject   Action = "manager_reject"
	ActionDirectorApprove Action = "director_approve"
	ActionDirectorReject  Action = "director_reject"
)

// Stage is one of the two review queues.
type Stage string

const (
	StageManager  Stage = "manager"
	StageDirector Stage = "director"
)

var (
	// ErrInvalidTransition is returned when an action does not apply to the
	// case's current status. approved and rejected are terminal.
	ErrInvalidTransition = errors.New("invalid workflow transition")
	// ErrReasonRequired is returned when a reject action has a blank reason.
	ErrReasonRequired = errors.New("a reason is required to reject")
	ErrUnknownStage   = errors.New("unknown approval stage")
)

type transition struct {
	from   models.Status
	action Action
}

var table = map[transition]models.Status{
	{models.StatusDraft, ActionSubmit}:                    models.StatusPendingManager,
	{"", ActionSubmit}:                                    models.StatusPendingManager,
	{models.StatusPendingManager, ActionManagerApprove}:   models.StatusPendingDirector,
	{models.StatusPendingManager, ActionManagerReject}:    models.StatusRejected,
	{models.StatusPendingDirector, ActionDirectorApprove}: models.StatusApproved,
	{models.StatusPendingDirector, ActionDirectorReject}:  models.StatusPendingManager,
}

// Next reports the status that action leads to from the given status.
func Next(from models.Status, action Action) (models.Status, bool) {
	to, ok := table[transition{from, action}]
	return to, ok
}

// IsReject reports whether action needs a rejection reason.
func (a Action) IsReject() bool {
	return a == ActionManagerReject || a == ActionDirectorReject
}

// Apply moves c through one transition. c is left untouched when an error
// is returned.
func Apply(c *models.Case, action Action, reason string, now time.Time) error {
	to, ok := Next(c.Status, action)
	if !ok {
		return fmt.Errorf("%w: %s from %q", ErrInvalidTransition, action, c.Status)
	}
	reason = strings.TrimSpace(reason)
	if action.IsReject() && reason == "" {
		return ErrReasonRequired
	}

	c.Status = to
	switch action {
	case ActionManagerReject, ActionDirectorReject:
		c.RejectionReason = reason
	case ActionManagerApprove:
		c.RejectionReason = ""
	case ActionDirectorApprove:
		c.RejectionReason = ""
		c.ApprovedAt = now.UnixMilli()
	}
	return nil
}

// StatusFor returns the status a stage reviews.
func StatusFor(stage Stage) (models.Status, error) {
	switch stage {
	case StageManager:
		return models.StatusPendingManager, nil
	case StageDirector:
		return models.StatusPendingDirector, nil
	}
	return "", ErrUnknownStage
}

// Queue returns the cases waiting on stage, in collection order.
func Queue(stage Stage, cases []models.Case) []models.Case {
	want, err := StatusFor(stage)
	if err != nil {
		return nil
	}
	var out []models.Case
	for _, c := range cases {
		if c.Status == want {
			out = append(out, c)
		}
	}
	return out
}

func approveAction(stage Stage) (Action, error) {
	switch stage {
	case StageManager:
		return ActionManagerApprove, nil
	case StageDirector:
		return ActionDirectorApprove, nil
	}
	return "", ErrUnknownStage
}

func rejectAction(stage Stage) (Action, error) {
	switch stage {
	case StageManager:
		return ActionManagerReject, nil
	case StageDirector:
		return ActionDirectorReject, nil
	}
	return "", ErrUnknownStage
}

// Service applies review decisions to cases held in a case store.
// Each call affects exactly one case.
type Service struct {
	Cases *casestore.Store
	Now   func() time.Time
}

func NewService(cases *casestore.Store) *Service {
	return &Service{Cases: cases, Now: time.Now}
}

// Approve advances the case one step out of stage's queue.
func (s *Service) Approve(stage Stage, id string) (models.Case, error) {
	action, err := approveAction(stage)
	if err != nil {
		return models.Case{}, err
	}
	return s.apply(id, action, "")
}

// Reject turns the case down at stage with the given reason.
func (s *Service) Reject(stage Stage, id, reason string) (models.Case, error) {
	action, err := rejectAction(stage)
	if err != nil {
		return models.Case{}, err
	}
	return s.apply(id, action, reason)
}

func (s *Service) apply(id string, action Action, reason string) (models.Case, error) {
	var (
		out      models.Case
		applyErr error
	)
	err := s.Cases.Mutate(id, func(c *models.Case) {
		if applyErr = Apply(c, action, reason, s.Now()); applyErr == nil {
			out = c.Clone()
		}
	})
	if err != nil {
		return models.Case{}, err
	}
	return out, applyErr
}
