// internal/app/system/auditlog/logger.go
package auditlog

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/casehub/internal/app/store/audit"
	"github.com/dalemusser/casehub/internal/app/system/approval"
	"github.com/dalemusser/casehub/internal/app/system/auth"
	"github.com/dalemusser/casehub/internal/app/system/ratelimit"
	"github.com/dalemusser/casehub/internal/domain/models"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Cases controls logging for editor events (create, edit, delete).
	// Values: "all" (store + zap), "store" (store only), "log" (zap only), "off" (disabled)
	Cases string
	// Reviews controls logging for approval decisions.
	// Values: "all" (store + zap), "store" (store only), "log" (zap only), "off" (disabled)
	Reviews string
}

// Logger provides convenience methods for logging audit events.
// It records to the in-memory audit.Store and to structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.String("actor", event.Actor),
		zap.String("role", event.Role),
		zap.String("case_id", event.CaseID),
		zap.String("ip", event.IP),
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}
	l.zapLog.Info("audit event", fields...)
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryCase:
		setting = l.config.Cases
	case audit.CategoryReview:
		setting = l.config.Reviews
	}
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "store") && l.store != nil {
		l.store.Log(event)
	}
}

// newEvent fills the who and where of an event from the request.
func newEvent(r *http.Request, category, eventType string, c models.Case) audit.Event {
	v := auth.CurrentViewer(r)
	return audit.Event{
		Category:  category,
		EventType: eventType,
		Actor:     v.Name,
		Role:      string(v.Role),
		CaseID:    c.ID,
		CaseTitle: c.Title,
		IP:        ratelimit.ClientIP(r),
	}
}

// --- Case Events ---

// CaseCreated logs a case saved from the editor.
func (l *Logger) CaseCreated(r *http.Request, c models.Case) {
	e := newEvent(r, audit.CategoryCase, audit.EventCaseCreated, c)
	e.Details = map[string]string{
		"category":    c.Category.Name,
		"attachments": strconv.Itoa(len(c.Attachments)),
	}
	l.Log(e)
}

// CaseUpdated logs an edit.
func (l *Logger) CaseUpdated(r *http.Request, c models.Case) {
	e := newEvent(r, audit.CategoryCase, audit.EventCaseUpdated, c)
	e.Details = map[string]string{"status": string(c.Status)}
	l.Log(e)
}

// CaseDeleted logs a deletion.
func (l *Logger) CaseDeleted(r *http.Request, c models.Case) {
	l.Log(newEvent(r, audit.CategoryCase, audit.EventCaseDeleted, c))
}

// --- Review Events ---

// Approved logs an approval at stage. A manager approval forwards the case;
// a director approval publishes it.
func (l *Logger) Approved(r *http.Request, stage approval.Stage, c models.Case) {
	typ := audit.EventCaseForwarded
	if c.Status == models.StatusApproved {
		typ = audit.EventCaseApproved
	}
	e := newEvent(r, audit.CategoryReview, typ, c)
	e.Details = map[string]string{"stage": string(stage), "status": string(c.Status)}
	l.Log(e)
}

// Rejected logs a rejection at stage with its reason.
func (l *Logger) Rejected(r *http.Request, stage approval.Stage, c models.Case) {
	e := newEvent(r, audit.CategoryReview, audit.EventCaseRejected, c)
	e.Details = map[string]string{
		"stage":  string(stage),
		"status": string(c.Status),
		"reason": c.RejectionReason,
	}
	l.Log(e)
}
