// Package memory holds map-backed implementations of the override store repositories.
// They back local runs without PostgreSQL (APP_STORE=memory) and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/comment"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
)

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func matchesEmployee(employeeID string, filter *string) bool {
	return filter == nil || *filter == employeeID
}

// ===== TRANSACTIONS =====

// Transactor serializes units of work. Writes are not rolled back on error.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

// WithinTransaction implements punch.Transactor.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

// ===== MANUAL PUNCHES =====

type ManualPunchRepository struct {
	mu      sync.RWMutex
	punches map[string]punch.ManualPunch
	now     func() time.Time
}

func NewManualPunchRepository() *ManualPunchRepository {
	return &ManualPunchRepository{punches: make(map[string]punch.ManualPunch), now: time.Now}
}

func (r *ManualPunchRepository) duplicate(p punch.ManualPunch) bool {
	for _, existing := range r.punches {
		if existing.ID != p.ID && existing.EmployeeID == p.EmployeeID &&
			existing.Date.Equal(p.Date) && existing.Time == p.Time {
			return true
		}
	}
	return false
}

// Create implements punch.ManualPunchRepository.
func (r *ManualPunchRepository) Create(ctx context.Context, p punch.ManualPunch) (punch.ManualPunch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.duplicate(p) {
		return punch.ManualPunch{}, punch.ErrManualPunchExists
	}
	now := r.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.punches[p.ID] = p
	return p, nil
}

// GetByID implements punch.ManualPunchRepository.
func (r *ManualPunchRepository) GetByID(ctx context.Context, id string) (punch.ManualPunch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.punches[id]
	if !ok {
		return punch.ManualPunch{}, punch.ErrManualPunchNotFound
	}
	return p, nil
}

// UpdateTime implements punch.ManualPunchRepository.
func (r *ManualPunchRepository) UpdateTime(ctx context.Context, id string, newTime string) (punch.ManualPunch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.punches[id]
	if !ok {
		return punch.ManualPunch{}, punch.ErrManualPunchNotFound
	}
	p.Time = newTime
	if r.duplicate(p) {
		return punch.ManualPunch{}, punch.ErrManualPunchExists
	}
	p.UpdatedAt = r.now()
	r.punches[id] = p
	return p, nil
}

// Delete implements punch.ManualPunchRepository.
func (r *ManualPunchRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.punches[id]; !ok {
		return punch.ErrManualPunchNotFound
	}
	delete(r.punches, id)
	return nil
}

// ListByRange implements punch.ManualPunchRepository.
func (r *ManualPunchRepository) ListByRange(ctx context.Context, start, end time.Time, employeeID *string) ([]punch.ManualPunch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []punch.ManualPunch
	for _, p := range r.punches {
		if inRange(p.Date, start, end) && matchesEmployee(p.EmployeeID, employeeID) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ===== IGNORED PUNCHES =====

type IgnoredPunchRepository struct {
	mu      sync.RWMutex
	markers []punch.IgnoredMarker
	now     func() time.Time
}

func NewIgnoredPunchRepository() *IgnoredPunchRepository {
	return &IgnoredPunchRepository{now: time.Now}
}

func sameIdentity(a, b punch.IgnoredMarker) bool {
	if a.EmployeeID != b.EmployeeID || !a.Date.Equal(b.Date) {
		return false
	}
	if a.ManualPunchID != nil || b.ManualPunchID != nil {
		return a.ManualPunchID != nil && b.ManualPunchID != nil && *a.ManualPunchID == *b.ManualPunchID
	}
	return a.SequenceNumber != nil && b.SequenceNumber != nil && *a.SequenceNumber == *b.SequenceNumber &&
		a.DeviceSerial != nil && b.DeviceSerial != nil && *a.DeviceSerial == *b.DeviceSerial
}

// Insert implements punch.IgnoredPunchRepository.
func (r *IgnoredPunchRepository) Insert(ctx context.Context, m punch.IgnoredMarker) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.markers {
		if sameIdentity(existing, m) {
			return false, nil
		}
	}
	m.CreatedAt = r.now()
	r.markers = append(r.markers, m)
	return true, nil
}

// Remove implements punch.IgnoredPunchRepository.
func (r *IgnoredPunchRepository) Remove(ctx context.Context, m punch.IgnoredMarker) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.markers {
		if sameIdentity(existing, m) {
			r.markers = append(r.markers[:i], r.markers[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListByRange implements punch.IgnoredPunchRepository.
func (r *IgnoredPunchRepository) ListByRange(ctx context.Context, start, end time.Time, employeeID *string) ([]punch.IgnoredMarker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []punch.IgnoredMarker
	for _, m := range r.markers {
		if inRange(m.Date, start, end) && matchesEmployee(m.EmployeeID, employeeID) {
			out = append(out, m)
		}
	}
	return out, nil
}

// ===== COMMENTS =====

type CommentRepository struct {
	mu       sync.RWMutex
	comments []comment.Comment
	now      func() time.Time
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{now: time.Now}
}

// Create implements comment.CommentRepository.
func (r *CommentRepository) Create(ctx context.Context, c comment.Comment) (comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.CreatedAt = r.now()
	r.comments = append(r.comments, c)
	return c, nil
}

// GetByID implements comment.CommentRepository.
func (r *CommentRepository) GetByID(ctx context.Context, id string) (comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return comment.Comment{}, comment.ErrCommentNotFound
}

// Delete implements comment.CommentRepository.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.comments {
		if c.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return comment.ErrCommentNotFound
}

// ListByRange implements comment.CommentRepository. Comments keep insertion order.
func (r *CommentRepository) ListByRange(ctx context.Context, start, end time.Time, employeeID *string) ([]comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []comment.Comment
	for _, c := range r.comments {
		if inRange(c.Date, start, end) && matchesEmployee(c.EmployeeID, employeeID) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ===== EVENTS =====

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]event.Event
	now    func() time.Time
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]event.Event), now: time.Now}
}

// Create implements event.EventRepository.
func (r *EventRepository) Create(ctx context.Context, e event.Event) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.events[e.ID] = e
	return e, nil
}

// GetByID implements event.EventRepository.
func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	return e, nil
}

// Update implements event.EventRepository.
func (r *EventRepository) Update(ctx context.Context, e event.Event) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.events[e.ID]
	if !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	e.CreatedBy = existing.CreatedBy
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = r.now()
	r.events[e.ID] = e
	return e, nil
}

// Delete implements event.EventRepository.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return event.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

// ListOverlapping implements event.EventRepository.
func (r *EventRepository) ListOverlapping(ctx context.Context, start, end time.Time, employeeID *string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []event.Event
	for _, e := range r.events {
		if !e.EndDate.Before(start) && !e.StartDate.After(end) && matchesEmployee(e.EmployeeID, employeeID) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ===== AUDIT =====

type AuditRepository struct {
	mu      sync.RWMutex
	records []audit.Record
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Append implements audit.AuditRepository.
func (r *AuditRepository) Append(ctx context.Context, rec audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)
	return nil
}

// List implements audit.AuditRepository. Newest records come first.
func (r *AuditRepository) List(ctx context.Context, filter audit.AuditFilter) ([]audit.Record, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []audit.Record
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if filter.EntityType != nil && rec.EntityType != *filter.EntityType {
			continue
		}
		if filter.EntityID != nil && (rec.EntityID == nil || *rec.EntityID != *filter.EntityID) {
			continue
		}
		if filter.Action != nil && string(rec.Action) != *filter.Action {
			continue
		}
		if filter.Actor != nil && rec.Actor != *filter.Actor {
			continue
		}
		matched = append(matched, rec)
	}

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 || offset >= len(matched) {
		return []audit.Record{}, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// Records returns a copy of every appended record in insertion order.
func (r *AuditRepository) Records() []audit.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Record, len(r.records))
	copy(out, r.records)
	return out
}
