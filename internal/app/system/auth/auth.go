// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Personas                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// Role is the persona the viewer is acting as. It decides which navigation
// is offered and which review pages open (see authz.RequireRole).
type Role string

const (
	RoleContributor Role = "contributor"
	RoleManager     Role = "manager"
	RoleDirector    Role = "director"
)

// Roles lists every persona in switcher order.
var Roles = []Role{RoleContributor, RoleManager, RoleDirector}

// ParseRole normalizes s, returning false for unknown roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Label is the display name of the role.
func (r Role) Label() string {
	switch r {
	case RoleManager:
		return "Manager"
	case RoleDirector:
		return "Director"
	}
	return "Contributor"
}

// Viewer is the single person using the app: a fixed identity from config
// plus the persona chosen in the session.
type Viewer struct {
	Name         string
	Avatar       string
	DivisionID   string
	DepartmentID string
	SectionID    string
	Role         Role
}

// Author returns the identity written on cases and comments.
func (v Viewer) Author() models.Author {
	return models.Author{Name: v.Name, Avatar: v.Avatar}
}

// CanReview reports whether the persona has an approval queue.
func (v Viewer) CanReview() bool {
	return v.Role == RoleManager || v.Role == RoleDirector
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session manager                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	roleKey = "role"
)

// SessionManager keeps the persona and one-shot notices in a signed cookie.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	base  Viewer
	log   *zap.Logger
}

// NewSessionManager builds the cookie store. base is the viewer identity
// used for every request; its Role is the default persona.
//
// In production (secure=true) cookies are Secure + SameSite=None; in local
// dev over http://localhost use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, secure bool, base Viewer, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if base.Role == "" {
		base.Role = RoleContributor
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		MaxAge:   86400 * 30,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, base: base, log: logger}, nil
}

// session loads the cookie session. A cookie that fails to decode (rotated
// key, tampering) is replaced by a fresh session instead of failing.
func (sm *SessionManager) session(r *http.Request) *sessions.Session {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			sm.log.Debug("discarding undecodable session cookie", zap.Error(err))
		} else {
			sm.log.Warn("session load failed", zap.Error(err))
		}
		sess = sessions.NewSession(sm.store, sm.name)
		sess.Options = sm.store.Options
		sess.IsNew = true
	}
	return sess
}

// LoadViewer injects the viewer and any pending notices into the request
// context. Notices are consumed here, so they show exactly once.
func (sm *SessionManager) LoadViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sm.session(r)

		v := sm.base
		if s, ok := sess.Values[roleKey].(string); ok {
			if role, ok := ParseRole(s); ok {
				v.Role = role
			}
		}

		var notices []string
		for _, f := range sess.Flashes() {
			if s, ok := f.(string); ok {
				notices = append(notices, s)
			}
		}
		if len(notices) > 0 {
			if err := sess.Save(r, w); err != nil {
				sm.log.Warn("failed to clear notices", zap.Error(err))
			}
		}

		ctx := context.WithValue(r.Context(), viewerKey, &v)
		ctx = context.WithValue(ctx, noticesKey, notices)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetRole stores the chosen persona.
func (sm *SessionManager) SetRole(w http.ResponseWriter, r *http.Request, role Role) error {
	sess := sm.session(r)
	sess.Values[roleKey] = string(role)
	return sess.Save(r, w)
}

// AddNotice queues a message for the next page render.
func (sm *SessionManager) AddNotice(w http.ResponseWriter, r *http.Request, msg string) error {
	sess := sm.session(r)
	sess.AddFlash(msg)
	return sess.Save(r, w)
}

// Default returns the configured viewer.
func (sm *SessionManager) Default() Viewer { return sm.base }

/*─────────────────────────────────────────────────────────────────────────────*
| Context helpers                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const (
	viewerKey  ctxKey = "viewer"
	noticesKey ctxKey = "notices"
)

// CurrentViewer returns the viewer placed in context by LoadViewer. Without
// one it returns an anonymous contributor.
func CurrentViewer(r *http.Request) Viewer {
	if v, ok := r.Context().Value(viewerKey).(*Viewer); ok && v != nil {
		return *v
	}
	return Viewer{Name: "Guest", Role: RoleContributor}
}

// Notices returns the one-shot messages loaded for this request.
func Notices(r *http.Request) []string {
	n, _ := r.Context().Value(noticesKey).([]string)
	return n
}

// WithTestViewer injects v into the request context, bypassing the
// session middleware. For tests.
func WithTestViewer(r *http.Request, v Viewer) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), viewerKey, &v))
}
