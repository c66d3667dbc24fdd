// internal/app/features/dashboard/contributor.go
package dashboard

import (
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/casehub/internal/domain/models"
)

// mine is the contributor's own submissions, grouped by workflow state.
type mine struct {
	Pending  []viewdata.CaseCard
	Returned []viewdata.CaseCard
	Approved int
}

func contributorPanel(st *hub.State, author string) *mine {
	m := &mine{}
	for _, c := range st.Cases.ByAuthor(author) {
		switch c.Status {
		case models.StatusPendingManager, models.StatusPendingDirector:
			m.Pending = append(m.Pending, viewdata.NewCaseCard(c, st.Catalog))
		case models.StatusRejected:
			m.Returned = append(m.Returned, viewdata.NewCaseCard(c, st.Catalog))
		case models.StatusApproved:
			m.Approved++
		}
	}
	return m
}
