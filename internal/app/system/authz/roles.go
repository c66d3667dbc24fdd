// internal/app/system/authz/roles.go
package authz

import (
	"net/http"

	"github.com/dalemusser/casehub/internal/app/system/approval"
	"github.com/dalemusser/casehub/internal/app/system/auth"
)

// HasAnyRole reports whether the viewer's persona is one of roles.
func HasAnyRole(r *http.Request, roles ...auth.Role) bool {
	cur := auth.CurrentViewer(r).Role
	for _, want := range roles {
		if cur == want {
			return true
		}
	}
	return false
}

// ReviewerFor returns the persona that works the given approval queue.
func ReviewerFor(stage approval.Stage) (auth.Role, bool) {
	switch stage {
	case approval.StageManager:
		return auth.RoleManager, true
	case approval.StageDirector:
		return auth.RoleDirector, true
	}
	return "", false
}

// CanReview reports whether the viewer may act on stage's queue.
func CanReview(r *http.Request, stage approval.Stage) bool {
	role, ok := ReviewerFor(stage)
	return ok && HasAnyRole(r, role)
}

// HomeQueue returns the queue path for the viewer's persona, or "" for a
// contributor.
func HomeQueue(r *http.Request) string {
	switch auth.CurrentViewer(r).Role {
	case auth.RoleManager:
		return "/approvals/manager"
	case auth.RoleDirector:
		return "/approvals/director"
	}
	return ""
}
