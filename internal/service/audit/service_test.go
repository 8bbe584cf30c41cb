package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingAuditRepo struct {
	calls int
}

func (r *failingAuditRepo) Append(ctx context.Context, rec audit.Record) error {
	r.calls++
	return errors.New("audit table is gone")
}

func (r *failingAuditRepo) List(ctx context.Context, filter audit.AuditFilter) ([]audit.Record, int64, error) {
	return nil, 0, errors.New("audit table is gone")
}

type ctxCapturingRepo struct {
	ctxErr error
}

func (r *ctxCapturingRepo) Append(ctx context.Context, rec audit.Record) error {
	r.ctxErr = ctx.Err()
	return nil
}

func (r *ctxCapturingRepo) List(ctx context.Context, filter audit.AuditFilter) ([]audit.Record, int64, error) {
	return nil, 0, nil
}

func TestRecord_WritesSnapshots(t *testing.T) {
	repo := memory.NewAuditRepository()
	svc := NewAuditService(repo)
	id := "p-1"

	svc.Record(context.Background(), "maria", audit.ActionUpdate, audit.EntityManualPunch, &id,
		map[string]string{"time": "08:00"}, map[string]string{"time": "08:15"})

	records := repo.Records()
	require.Len(t, records, 1)
	uid, err := uuid.Parse(records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), uid.Version())
	assert.Equal(t, "maria", records[0].Actor)
	assert.Equal(t, audit.ActionUpdate, records[0].Action)
	assert.JSONEq(t, `{"time":"08:00"}`, string(records[0].Before))
	assert.JSONEq(t, `{"time":"08:15"}`, string(records[0].After))
}

func TestRecord_NilSnapshotsStayEmpty(t *testing.T) {
	repo := memory.NewAuditRepository()
	svc := NewAuditService(repo)

	svc.Record(context.Background(), "maria", audit.ActionCreate, audit.EntityComment, nil, nil, (*struct{})(nil))

	records := repo.Records()
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Before)
	assert.Nil(t, records[0].After)
}

func TestRecord_FailureIsSwallowed(t *testing.T) {
	repo := &failingAuditRepo{}
	svc := NewAuditService(repo)

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), "maria", audit.ActionDelete, audit.EntityEvent, nil, nil, nil)
	})
	assert.Equal(t, 1, repo.calls)
}

func TestRecord_SurvivesCanceledRequest(t *testing.T) {
	repo := &ctxCapturingRepo{}
	svc := NewAuditService(repo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Record(ctx, "maria", audit.ActionCreate, audit.EntityEvent, nil, nil, nil)

	assert.NoError(t, repo.ctxErr)
}

func TestListAudit_Paginates(t *testing.T) {
	repo := memory.NewAuditRepository()
	svc := NewAuditService(repo)
	for i := 0; i < 5; i++ {
		svc.Record(context.Background(), "maria", audit.ActionCreate, audit.EntityComment, nil, nil, nil)
	}
	svc.Record(context.Background(), "joao", audit.ActionDelete, audit.EntityComment, nil, nil, nil)

	resp, err := svc.ListAudit(context.Background(), audit.AuditFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Records, 2)
	assert.Equal(t, int64(6), resp.TotalItems)
	assert.Equal(t, 3, resp.TotalPages)

	actor := "joao"
	resp, err = svc.ListAudit(context.Background(), audit.AuditFilter{Actor: &actor})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, audit.ActionDelete, resp.Records[0].Action)
	assert.Equal(t, 50, resp.Limit)
}

func TestListAudit_InvalidAction(t *testing.T) {
	svc := NewAuditService(memory.NewAuditRepository())
	action := "EXPLODE"

	_, err := svc.ListAudit(context.Background(), audit.AuditFilter{Action: &action})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestListAudit_RepositoryError(t *testing.T) {
	svc := NewAuditService(&failingAuditRepo{})

	_, err := svc.ListAudit(context.Background(), audit.AuditFilter{})

	assert.ErrorContains(t, err, "failed to list audit records")
}
