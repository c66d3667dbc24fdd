// internal/app/system/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casehub_http_requests_total",
			Help: "HTTP requests served, by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "casehub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CasesCreated counts cases saved from the editor.
	CasesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casehub_cases_created_total",
		Help: "Cases created.",
	})

	// CasesDeleted counts deleted cases.
	CasesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casehub_cases_deleted_total",
		Help: "Cases deleted.",
	})

	// ApprovalActions counts review decisions by action.
	ApprovalActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casehub_approval_actions_total",
		Help: "Approval workflow actions applied, by action.",
	}, []string{"action"})

	// CaseViews counts fresh case opens.
	CaseViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casehub_case_views_total",
		Help: "Case views recorded.",
	})

	// Comments counts comments posted.
	Comments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casehub_comments_total",
		Help: "Comments added to cases.",
	})

	// AttachmentBytes counts uploaded attachment content.
	AttachmentBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casehub_attachment_bytes_total",
		Help: "Bytes of attachment content accepted.",
	})

	// SeedReloads counts reloads of the seed file, by outcome.
	SeedReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casehub_seed_reloads_total",
		Help: "Seed file reloads, by result.",
	}, []string{"result"})
)

// Middleware records request count and latency. Routes are labelled by
// their chi pattern so case ids do not blow up cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := RouteLabel(r)
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RouteLabel returns the matched chi route pattern, or "unmatched".
func RouteLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
