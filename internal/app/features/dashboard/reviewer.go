// internal/app/features/dashboard/reviewer.go
package dashboard

import (
	"github.com/dalemusser/casehub/internal/app/system/approval"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/hub"
)

// review summarizes the reviewer's queue.
type review struct {
	Heading  string
	Waiting  int
	QueueURL string
	Oldest   string
}

func reviewerPanel(st *hub.State, role auth.Role) *review {
	stage := approval.StageManager
	heading := "Manager review"
	if role == auth.RoleDirector {
		stage = approval.StageDirector
		heading = "Director approval"
	}
	q := approval.Queue(stage, st.Cases.All())
	rv := &review{
		Heading:  heading,
		Waiting:  len(q),
		QueueURL: "/approvals/" + string(stage),
	}
	var oldest int64
	for _, c := range q {
		if oldest == 0 || c.CreatedAt < oldest {
			oldest = c.CreatedAt
			rv.Oldest = c.Title
		}
	}
	return rv
}
