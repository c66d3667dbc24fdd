// internal/app/features/approvals/queue.go
package approvals

import (
	"net/http"

	"github.com/dalemusser/casehub/internal/app/system/approval"
	"github.com/dalemusser/casehub/internal/app/system/authz"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

type queueItem struct {
	viewdata.CaseCard
	ApproveURL string
	RejectURL  string
}

type queueData struct {
	viewdata.BaseVM
	Stage        string
	Heading      string
	Intro        string
	ApproveLabel string
	RejectLabel  string
	Items        []queueItem
}

func stageCopy(stage approval.Stage) (heading, intro, approve, reject string) {
	if stage == approval.StageDirector {
		return "Director approval",
			"Approved cases are published to the feed. Sending a case back returns it to the manager queue.",
			"Approve and publish", "Send back to manager"
	}
	return "Manager review",
		"Approved cases move on to the director. Rejected cases go back to their author.",
		"Approve", "Reject"
}

// ServeIndex sends reviewers to their own queue.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if q := authz.HomeQueue(r); q != "" {
		http.Redirect(w, r, q, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, authz.ForbiddenPath, http.StatusSeeOther)
}

// ServeQueue lists the cases waiting on stage.
func (h *Handler) ServeQueue(stage approval.Stage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		heading, intro, approve, reject := stageCopy(stage)
		data := queueData{
			BaseVM:       viewdata.NewBaseVM(r, heading, "/"),
			Stage:        string(stage),
			Heading:      heading,
			Intro:        intro,
			ApproveLabel: approve,
			RejectLabel:  reject,
		}
		base := "/approvals/" + string(stage) + "/"
		if err := h.read(r, func(st *hub.State) error {
			for _, c := range approval.Queue(stage, st.Cases.All()) {
				data.Items = append(data.Items, queueItem{
					CaseCard:   viewdata.NewCaseCard(c, st.Catalog),
					ApproveURL: base + c.ID + "/approve",
					RejectURL:  base + c.ID + "/reject",
				})
			}
			data.Sidebar = viewdata.BuildSidebar(st)
			return nil
		}); err != nil {
			h.ErrLog.LogServerError(w, r, "load approval queue failed", err, "Could not load the queue.", "/")
			return
		}
		templates.Render(w, r, "approval_queue", data)
	}
}
