package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/comment"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type commentServiceImpl struct {
	commentRepo comment.CommentRepository
	recorder    audit.Recorder
	invalidator timesheet.Invalidator
}

func NewCommentService(commentRepo comment.CommentRepository, recorder audit.Recorder, invalidator timesheet.Invalidator) comment.CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		recorder:    recorder,
		invalidator: invalidator,
	}
}

// AddComment implements comment.CommentService.
func (s *commentServiceImpl) AddComment(ctx context.Context, req comment.AddCommentRequest) (comment.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return comment.CommentResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	id, err := uuid.NewV7()
	if err != nil {
		return comment.CommentResponse{}, fmt.Errorf("failed to generate comment id: %w", err)
	}

	created, err := s.commentRepo.Create(ctx, comment.Comment{
		ID:         id.String(),
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		Date:       date,
		Text:       req.Text,
		CreatedBy:  req.Actor,
	})
	if err != nil {
		return comment.CommentResponse{}, fmt.Errorf("failed to create comment: %w", err)
	}

	resp := comment.NewCommentResponse(created)
	s.recorder.Record(ctx, req.Actor, audit.ActionCreate, audit.EntityComment, &created.ID, nil, resp)
	s.invalidator.InvalidateDays(ctx, created.EmployeeID, created.Date, created.Date)

	return resp, nil
}

// ListComments implements comment.CommentService.
func (s *commentServiceImpl) ListComments(ctx context.Context, filter comment.CommentFilter) ([]comment.CommentResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	date, _ := validator.IsValidDate(filter.Date)
	employeeID := strings.TrimSpace(filter.EmployeeID)

	comments, err := s.commentRepo.ListByRange(ctx, date, date, &employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	resp := make([]comment.CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, comment.NewCommentResponse(c))
	}
	return resp, nil
}

// DeleteComment implements comment.CommentService.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, id string, actor string) error {
	existing, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			return err
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.recorder.Record(ctx, actor, audit.ActionDelete, audit.EntityComment, &existing.ID, comment.NewCommentResponse(existing), nil)
	s.invalidator.InvalidateDays(ctx, existing.EmployeeID, existing.Date, existing.Date)

	return nil
}
