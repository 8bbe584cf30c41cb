package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepositoryImpl{db: db}
}

const eventColumns = `id, employee_id, start_date, end_date, event_type, category, created_by, created_at, updated_at`

func scanEvent(row pgx.Row) (event.Event, error) {
	var e event.Event
	err := row.Scan(
		&e.ID,
		&e.EmployeeID,
		&e.StartDate,
		&e.EndDate,
		&e.EventType,
		&e.Category,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create implements event.EventRepository.
func (r *eventRepositoryImpl) Create(ctx context.Context, e event.Event) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO events (id, employee_id, start_date, end_date, event_type, category, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + eventColumns

	result, err := scanEvent(q.QueryRow(ctx, query,
		e.ID, e.EmployeeID, e.StartDate, e.EndDate, e.EventType, string(e.Category), e.CreatedBy))
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	return result, nil
}

// GetByID implements event.EventRepository.
func (r *eventRepositoryImpl) GetByID(ctx context.Context, id string) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanEvent(q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to get event: %w", err)
	}

	return result, nil
}

// Update implements event.EventRepository. The author and creation time are kept.
func (r *eventRepositoryImpl) Update(ctx context.Context, e event.Event) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE events
		SET start_date = $2, end_date = $3, event_type = $4, category = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns

	result, err := scanEvent(q.QueryRow(ctx, query, e.ID, e.StartDate, e.EndDate, e.EventType, string(e.Category)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	return result, nil
}

// Delete implements event.EventRepository.
func (r *eventRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}

	return nil
}

// ListOverlapping implements event.EventRepository.
func (r *eventRepositoryImpl) ListOverlapping(ctx context.Context, start, end time.Time, employeeID *string) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE start_date <= $2 AND end_date >= $1
		  AND ($3::text IS NULL OR employee_id = $3)
		ORDER BY start_date ASC, id ASC
	`

	rows, err := q.Query(ctx, query, start, end, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return events, nil
}
