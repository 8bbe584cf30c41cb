package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/comment"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type commentRepositoryImpl struct {
	db *database.DB
}

func NewCommentRepository(db *database.DB) comment.CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create implements comment.CommentRepository.
func (r *commentRepositoryImpl) Create(ctx context.Context, c comment.Comment) (comment.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO comments (id, employee_id, date, text, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, employee_id, date, text, created_by, created_at
	`

	var result comment.Comment
	err := q.QueryRow(ctx, query, c.ID, c.EmployeeID, c.Date, c.Text, c.CreatedBy).Scan(
		&result.ID,
		&result.EmployeeID,
		&result.Date,
		&result.Text,
		&result.CreatedBy,
		&result.CreatedAt,
	)
	if err != nil {
		return comment.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	return result, nil
}

// GetByID implements comment.CommentRepository.
func (r *commentRepositoryImpl) GetByID(ctx context.Context, id string) (comment.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, text, created_by, created_at
		FROM comments
		WHERE id = $1
	`

	var result comment.Comment
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.EmployeeID,
		&result.Date,
		&result.Text,
		&result.CreatedBy,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return comment.Comment{}, comment.ErrCommentNotFound
		}
		return comment.Comment{}, fmt.Errorf("failed to get comment: %w", err)
	}

	return result, nil
}

// Delete implements comment.CommentRepository.
func (r *commentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}

// ListByRange implements comment.CommentRepository.
func (r *commentRepositoryImpl) ListByRange(ctx context.Context, start, end time.Time, employeeID *string) ([]comment.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, text, created_by, created_at
		FROM comments
		WHERE date BETWEEN $1 AND $2
		  AND ($3::text IS NULL OR employee_id = $3)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, start, end, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []comment.Comment
	for rows.Next() {
		var c comment.Comment
		err := rows.Scan(
			&c.ID,
			&c.EmployeeID,
			&c.Date,
			&c.Text,
			&c.CreatedBy,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return comments, nil
}
