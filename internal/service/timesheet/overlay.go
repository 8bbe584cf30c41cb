package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
)

// OverlayIndex finds the event that overrides an employee's day.
type OverlayIndex struct {
	byEmployee map[string][]event.Event
}

func NewOverlayIndex(events []event.Event) OverlayIndex {
	idx := OverlayIndex{byEmployee: make(map[string][]event.Event)}
	for _, e := range events {
		if !e.Category.IsValid() {
			continue
		}
		idx.byEmployee[e.EmployeeID] = append(idx.byEmployee[e.EmployeeID], e)
	}
	return idx
}

// For returns the applicable event for employeeID on day (midnight UTC), or nil.
// FIXED beats PERIOD; then the latest start wins; then the latest created.
func (idx OverlayIndex) For(employeeID string, day time.Time) *event.Event {
	var best *event.Event
	for i := range idx.byEmployee[employeeID] {
		e := &idx.byEmployee[employeeID][i]
		if !e.Covers(day) {
			continue
		}
		if best == nil || precedes(*e, *best) {
			best = e
		}
	}
	if best == nil {
		return nil
	}
	found := *best
	return &found
}

// Days lists every day in [start, end] covered by some event of employeeID.
func (idx OverlayIndex) Days(employeeID string, start, end time.Time) []time.Time {
	var days []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if idx.For(employeeID, day) != nil {
			days = append(days, day)
		}
	}
	return days
}

// Employees returns the employee ids that have at least one event.
func (idx OverlayIndex) Employees() []string {
	ids := make([]string, 0, len(idx.byEmployee))
	for id := range idx.byEmployee {
		ids = append(ids, id)
	}
	return ids
}

func precedes(a, b event.Event) bool {
	if a.Category != b.Category {
		return a.Category == event.CategoryFixed
	}
	if !a.StartDate.Equal(b.StartDate) {
		return a.StartDate.After(b.StartDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
