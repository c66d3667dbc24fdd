// internal/app/store/audit/store.go
package audit

import (
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event categories
const (
	CategoryCase   = "case"
	CategoryReview = "review"
)

// Case event types
const (
	EventCaseCreated = "case_created"
	EventCaseUpdated = "case_updated"
	EventCaseDeleted = "case_deleted"
)

// Review event types
const (
	EventCaseForwarded = "case_forwarded"
	EventCaseApproved  = "case_approved"
	EventCaseRejected  = "case_rejected"
)

// DefaultCapacity is how many events the store keeps when none is given.
const DefaultCapacity = 1000

// Event represents an audit event.
type Event struct {
	ID        primitive.ObjectID
	Timestamp time.Time

	// Event classification
	Category  string
	EventType string

	// Who
	Actor string // viewer name
	Role  string // persona at the time

	// What
	CaseID    string
	CaseTitle string

	// Context
	IP string

	// Additional details (varies by event type)
	Details map[string]string
}

// QueryFilter defines filters for querying audit events. Blank fields
// match everything.
type QueryFilter struct {
	Category  string
	EventType string
	CaseID    string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

func (f QueryFilter) match(e Event) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.EventType != "" && e.EventType != f.EventType {
		return false
	}
	if f.CaseID != "" && e.CaseID != f.CaseID {
		return false
	}
	if f.StartTime != nil && e.Timestamp.Before(*f.StartTime) {
		return false
	}
	if f.EndTime != nil && e.Timestamp.After(*f.EndTime) {
		return false
	}
	return true
}

// Store keeps the most recent audit events in a fixed-size ring. It is safe
// for concurrent use; handlers log from their own goroutines.
type Store struct {
	mu     sync.RWMutex
	events []Event
	next   int
	full   bool
}

// New creates a store holding up to capacity events. A non-positive
// capacity selects DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{events: make([]Event, capacity)}
}

// Log records an audit event, evicting the oldest one when full.
func (s *Store) Log(event Event) {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[s.next] = event
	s.next = (s.next + 1) % len(s.events)
	if s.next == 0 {
		s.full = true
	}
}

// newestFirst walks the ring from the latest event back, stopping when fn
// returns false. Callers hold the read lock.
func (s *Store) newestFirst(fn func(Event) bool) {
	n := s.next
	if s.full {
		n = len(s.events)
	}
	for i := 0; i < n; i++ {
		idx := (s.next - 1 - i + len(s.events)) % len(s.events)
		if !fn(s.events[idx]) {
			return
		}
	}
}

// Query returns events matching filter, newest first, honoring Offset and
// Limit (zero Limit means no limit).
func (s *Store) Query(filter QueryFilter) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	skipped := 0
	s.newestFirst(func(e Event) bool {
		if !filter.match(e) {
			return true
		}
		if skipped < filter.Offset {
			skipped++
			return true
		}
		out = append(out, e)
		return filter.Limit <= 0 || len(out) < filter.Limit
	})
	return out
}

// CountByFilter returns how many stored events match filter, ignoring
// Offset and Limit.
func (s *Store) CountByFilter(filter QueryFilter) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	s.newestFirst(func(e Event) bool {
		if filter.match(e) {
			n++
		}
		return true
	})
	return n
}

// GetByCase returns up to limit events for one case, newest first.
func (s *Store) GetByCase(caseID string, limit int) []Event {
	return s.Query(QueryFilter{CaseID: caseID, Limit: limit})
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.full {
		return len(s.events)
	}
	return s.next
}
