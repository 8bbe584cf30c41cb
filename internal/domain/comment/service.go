package comment

import "context"

type CommentService interface {
	AddComment(ctx context.Context, req AddCommentRequest) (CommentResponse, error)
	ListComments(ctx context.Context, filter CommentFilter) ([]CommentResponse, error)
	DeleteComment(ctx context.Context, id string, actor string) error
}
