package comment

import (
	"context"
	"time"
)

type CommentRepository interface {
	Create(ctx context.Context, c Comment) (Comment, error)
	GetByID(ctx context.Context, id string) (Comment, error)
	Delete(ctx context.Context, id string) error
	// ListByRange returns comments ordered by created_at ascending.
	ListByRange(ctx context.Context, start, end time.Time, employeeID *string) ([]Comment, error)
}
