// internal/app/features/keyboard/handler.go
package keyboard

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/casefilter"
	"github.com/dalemusser/casehub/internal/app/system/shortcuts"
	"go.uber.org/zap"
)

// maxEventSize caps the JSON body of a key event.
const maxEventSize = 4 << 10

// Handler resolves key presses reported by the page script into actions.
type Handler struct {
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sm, Log: logger}
}

// ServeHelp handles GET /shortcuts with the binding list.
func (h *Handler) ServeHelp(w http.ResponseWriter, r *http.Request) {
	type binding struct {
		Keys        string `json:"keys"`
		Description string `json:"description"`
	}
	out := make([]binding, 0, len(shortcuts.Help))
	for _, b := range shortcuts.Help {
		out = append(out, binding{Keys: b.Keys, Description: b.Description})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// HandleKey handles POST /shortcuts.
//
// Request body:
//
//	{ "key":"s", "target":"BODY", "view":"feed", "query":"category=1" }
//
// Response:
//
//	{ "action":"toggle_saved", "location":"/?category=1&saved=1", "message":"..." }
//
// When the page is about to navigate, the message is queued as a notice so
// it shows on the next render; otherwise the script displays it itself.
func (h *Handler) HandleKey(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEventSize)

	var ev shortcuts.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		h.Log.Debug("bad shortcut event", zap.Error(err))
		http.Error(w, "bad event", http.StatusBadRequest)
		return
	}

	vals, err := url.ParseQuery(strings.TrimPrefix(ev.Query, "?"))
	if err != nil {
		vals = url.Values{}
	}
	res := shortcuts.Resolve(ev, casefilter.FromValues(vals))

	if res.Location != "" && res.Message != "" && h.Sessions != nil {
		if err := h.Sessions.AddNotice(w, r, res.Message); err != nil {
			h.Log.Warn("add notice failed", zap.Error(err))
		}
	}
	if res.Action != shortcuts.None {
		h.Log.Debug("shortcut", zap.String("key", ev.Key), zap.String("action", string(res.Action)))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}
