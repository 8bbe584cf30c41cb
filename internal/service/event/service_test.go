package event

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	auditService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/audit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyInvalidator struct {
	ranges [][2]string
}

func (s *spyInvalidator) InvalidateDays(ctx context.Context, employeeID string, start, end time.Time) {
	s.ranges = append(s.ranges, [2]string{start.Format(validator.DateLayout), end.Format(validator.DateLayout)})
}

func newTestService() (event.EventService, *memory.AuditRepository, *spyInvalidator) {
	auditRepo := memory.NewAuditRepository()
	inv := &spyInvalidator{}
	svc := NewEventService(memory.NewEventRepository(), auditService.NewAuditService(auditRepo), inv)
	return svc, auditRepo, inv
}

func vacationReq() event.CreateEventRequest {
	return event.CreateEventRequest{
		EmployeeID: "12345",
		StartDate:  "2025-01-06",
		EndDate:    "2025-01-17",
		EventType:  "Vacation",
		Category:   "period",
		Actor:      "maria",
	}
}

func TestCreateEvent_Success(t *testing.T) {
	svc, auditRepo, inv := newTestService()

	resp, err := svc.CreateEvent(context.Background(), vacationReq())

	require.NoError(t, err)
	uid, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), uid.Version())
	assert.Equal(t, event.CategoryPeriod, resp.Category)
	assert.Equal(t, "2025-01-06", resp.StartDate)
	assert.Equal(t, "2025-01-17", resp.EndDate)
	assert.Equal(t, [][2]string{{"2025-01-06", "2025-01-17"}}, inv.ranges)

	records := auditRepo.Records()
	require.Len(t, records, 1)
	assert.Equal(t, audit.ActionCreate, records[0].Action)
	assert.Equal(t, audit.EntityEvent, records[0].EntityType)
}

func TestCreateEvent_FixedMustBeSingleDay(t *testing.T) {
	svc, auditRepo, _ := newTestService()
	req := vacationReq()
	req.Category = event.CategoryFixed

	_, err := svc.CreateEvent(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "end_date")
	assert.Empty(t, auditRepo.Records())
}

func TestUpdateEvent_InvalidatesBothRanges(t *testing.T) {
	svc, auditRepo, inv := newTestService()
	ctx := context.Background()
	created, err := svc.CreateEvent(ctx, vacationReq())
	require.NoError(t, err)

	updated, err := svc.UpdateEvent(ctx, event.UpdateEventRequest{
		ID:        created.ID,
		StartDate: "2025-01-20",
		EndDate:   "2025-01-20",
		EventType: "day-off",
		Category:  event.CategoryFixed,
		Actor:     "joao",
	})

	require.NoError(t, err)
	assert.Equal(t, "12345", updated.EmployeeID)
	assert.Equal(t, "day-off", updated.EventType)
	assert.Equal(t, "maria", updated.CreatedBy)
	assert.Equal(t, [][2]string{
		{"2025-01-06", "2025-01-17"},
		{"2025-01-06", "2025-01-17"},
		{"2025-01-20", "2025-01-20"},
	}, inv.ranges)

	records := auditRepo.Records()
	require.Len(t, records, 2)
	assert.Equal(t, audit.ActionUpdate, records[1].Action)
	assert.Contains(t, string(records[1].Before), `"event_type":"Vacation"`)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateEvent(context.Background(), event.UpdateEventRequest{
		ID:        "missing",
		StartDate: "2025-01-20",
		EndDate:   "2025-01-20",
		EventType: "leave",
		Category:  event.CategoryFixed,
		Actor:     "maria",
	})

	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestDeleteAndGetEvent(t *testing.T) {
	svc, auditRepo, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateEvent(ctx, vacationReq())
	require.NoError(t, err)

	got, err := svc.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, svc.DeleteEvent(ctx, created.ID, "maria"))
	_, err = svc.GetEvent(ctx, created.ID)
	assert.ErrorIs(t, err, event.ErrEventNotFound)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, created.ID, "maria"), event.ErrEventNotFound)
	assert.Len(t, auditRepo.Records(), 2)
}

func TestListEvents_Overlapping(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	_, err := svc.CreateEvent(ctx, vacationReq())
	require.NoError(t, err)
	other := vacationReq()
	other.EmployeeID = "999"
	other.StartDate, other.EndDate = "2025-02-01", "2025-02-03"
	_, err = svc.CreateEvent(ctx, other)
	require.NoError(t, err)

	events, err := svc.ListEvents(ctx, event.EventFilter{StartDate: "2025-01-15", EndDate: "2025-01-31"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "12345", events[0].EmployeeID)

	employee := "999"
	events, err = svc.ListEvents(ctx, event.EventFilter{StartDate: "2025-01-01", EndDate: "2025-12-31", EmployeeID: &employee})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2025-02-01", events[0].StartDate)
}
