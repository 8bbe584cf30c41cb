package comment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/comment"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	auditService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct {
	count int
}

func (c *countingInvalidator) InvalidateDays(ctx context.Context, employeeID string, start, end time.Time) {
	c.count++
}

func TestAddAndListComments(t *testing.T) {
	auditRepo := memory.NewAuditRepository()
	inv := &countingInvalidator{}
	svc := NewCommentService(memory.NewCommentRepository(), auditService.NewAuditService(auditRepo), inv)
	ctx := context.Background()

	for _, text := range []string{"  forgot badge  ", "doctor appointment"} {
		_, err := svc.AddComment(ctx, comment.AddCommentRequest{
			EmployeeID: "12345",
			Date:       "2025-01-10",
			Text:       text,
			Actor:      "maria",
		})
		require.NoError(t, err)
	}
	_, err := svc.AddComment(ctx, comment.AddCommentRequest{EmployeeID: "12345", Date: "2025-01-11", Text: "next day", Actor: "maria"})
	require.NoError(t, err)

	list, err := svc.ListComments(ctx, comment.CommentFilter{EmployeeID: "12345", Date: "2025-01-10"})

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "forgot badge", list[0].Text)
	assert.Equal(t, "doctor appointment", list[1].Text)
	assert.Len(t, auditRepo.Records(), 3)
	assert.Equal(t, 3, inv.count)
}

func TestAddComment_Validation(t *testing.T) {
	auditRepo := memory.NewAuditRepository()
	svc := NewCommentService(memory.NewCommentRepository(), auditService.NewAuditService(auditRepo), &countingInvalidator{})

	_, err := svc.AddComment(context.Background(), comment.AddCommentRequest{
		EmployeeID: "12345",
		Date:       "2025-01-10",
		Text:       strings.Repeat("a", 2001),
		Actor:      "maria",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "text")
	assert.Empty(t, auditRepo.Records())
}

func TestDeleteComment(t *testing.T) {
	auditRepo := memory.NewAuditRepository()
	svc := NewCommentService(memory.NewCommentRepository(), auditService.NewAuditService(auditRepo), &countingInvalidator{})
	ctx := context.Background()
	created, err := svc.AddComment(ctx, comment.AddCommentRequest{EmployeeID: "12345", Date: "2025-01-10", Text: "typo", Actor: "maria"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(ctx, created.ID, "joao"))
	assert.ErrorIs(t, svc.DeleteComment(ctx, created.ID, "joao"), comment.ErrCommentNotFound)

	records := auditRepo.Records()
	require.Len(t, records, 2)
	assert.Equal(t, audit.ActionDelete, records[1].Action)
	assert.Equal(t, "joao", records[1].Actor)
}
