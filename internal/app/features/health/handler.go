package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Hub *hub.Hub
	Log *zap.Logger
}

// NewHandler constructs a health Handler with the state hub and logger.
func NewHandler(h *hub.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Hub: h,
		Log: logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	State   string `json:"state"`
	Cases   int    `json:"cases"`
	Blobs   int    `json:"attachments"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "state":"running", "cases":16, "attachments":0 }
//
// When the hub does not answer: 503 and
//
//	{ "status":"error", "state":"unavailable", "message":"State hub unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status: "ok",
		State:  "running",
	}

	err := h.Hub.View(ctx, func(st *hub.State) error {
		resp.Cases = st.Cases.Len()
		resp.Blobs = st.Blobs.Len()
		return nil
	})
	if err != nil {
		h.Log.Error("health-check: hub ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp = healthResponse{
			Status:  "error",
			State:   "unavailable",
			Message: "State hub unavailable",
			Error:   err.Error(),
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
