// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/casehub/internal/app/store/audit"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dustin/go-humanize"
)

const pageSize = 50

const dateLayout = "2006-01-02"

// ServeList handles GET /audit - displays the audit log list with filtering.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	eventType := strings.TrimSpace(q.Get("event_type"))
	caseID := strings.TrimSpace(q.Get("case"))
	startDate := strings.TrimSpace(q.Get("start_date"))
	endDate := strings.TrimSpace(q.Get("end_date"))

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	filter := audit.QueryFilter{
		Category:  category,
		EventType: eventType,
		CaseID:    caseID,
	}
	if startDate != "" {
		if t, err := time.Parse(dateLayout, startDate); err == nil {
			filter.StartTime = &t
		}
	}
	if endDate != "" {
		if t, err := time.Parse(dateLayout, endDate); err == nil {
			endOfDay := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndTime = &endOfDay
		}
	}

	total := h.Store.CountByFilter(filter)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize
	events := h.Store.Query(filter)

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, toItem(e))
	}

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Activity Log", "/"),
		Items:      items,
		Category:   category,
		EventType:  eventType,
		CaseID:     caseID,
		StartDate:  startDate,
		EndDate:    endDate,
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(category),
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if len(items) > 0 {
		data.RangeStart = filter.Offset + 1
		data.RangeEnd = filter.Offset + len(items)
	}

	v := url.Values{}
	for k, val := range map[string]string{
		"category":   category,
		"event_type": eventType,
		"case":       caseID,
		"start_date": startDate,
		"end_date":   endDate,
	} {
		if val != "" {
			v.Set(k, val)
		}
	}
	if data.HasPrev {
		v.Set("page", strconv.Itoa(page-1))
		data.PrevURL = "/audit?" + v.Encode()
	}
	if data.HasNext {
		v.Set("page", strconv.Itoa(page+1))
		data.NextURL = "/audit?" + v.Encode()
	}

	templates.Render(w, r, "audit_list", data)
}

func toItem(e audit.Event) listItem {
	item := listItem{
		ID:        e.ID.Hex(),
		When:      humanize.Time(e.Timestamp),
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		Category:  e.Category,
		EventType: e.EventType,
		Actor:     e.Actor,
		Role:      e.Role,
		CaseID:    e.CaseID,
		CaseTitle: e.CaseTitle,
		IP:        e.IP,
	}
	if e.CaseID != "" && e.EventType != audit.EventCaseDeleted {
		item.CaseURL = "/cases/" + e.CaseID
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		item.Details = append(item.Details, detail{Key: k, Value: e.Details[k]})
	}
	return item
}
