package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type manualPunchRepositoryImpl struct {
	db *database.DB
}

func NewManualPunchRepository(db *database.DB) punch.ManualPunchRepository {
	return &manualPunchRepositoryImpl{db: db}
}

const manualPunchColumns = `id, employee_id, person_id, date, time, created_by, created_at, updated_at`

func scanManualPunch(row pgx.Row) (punch.ManualPunch, error) {
	var p punch.ManualPunch
	err := row.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.PersonID,
		&p.Date,
		&p.Time,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create implements punch.ManualPunchRepository.
func (r *manualPunchRepositoryImpl) Create(ctx context.Context, p punch.ManualPunch) (punch.ManualPunch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO manual_punches (id, employee_id, person_id, date, time, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + manualPunchColumns

	result, err := scanManualPunch(q.QueryRow(ctx, query, p.ID, p.EmployeeID, p.PersonID, p.Date, p.Time, p.CreatedBy))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return punch.ManualPunch{}, punch.ErrManualPunchExists
		}
		return punch.ManualPunch{}, fmt.Errorf("failed to create manual punch: %w", err)
	}

	return result, nil
}

// GetByID implements punch.ManualPunchRepository.
func (r *manualPunchRepositoryImpl) GetByID(ctx context.Context, id string) (punch.ManualPunch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + manualPunchColumns + ` FROM manual_punches WHERE id = $1`
	if inTransaction(ctx) {
		query += ` FOR UPDATE`
	}

	result, err := scanManualPunch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.ManualPunch{}, punch.ErrManualPunchNotFound
		}
		return punch.ManualPunch{}, fmt.Errorf("failed to get manual punch: %w", err)
	}

	return result, nil
}

// UpdateTime implements punch.ManualPunchRepository.
func (r *manualPunchRepositoryImpl) UpdateTime(ctx context.Context, id string, newTime string) (punch.ManualPunch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE manual_punches SET time = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + manualPunchColumns

	result, err := scanManualPunch(q.QueryRow(ctx, query, id, newTime))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.ManualPunch{}, punch.ErrManualPunchNotFound
		}
		if database.IsUniqueViolation(err) {
			return punch.ManualPunch{}, punch.ErrManualPunchExists
		}
		return punch.ManualPunch{}, fmt.Errorf("failed to update manual punch: %w", err)
	}

	return result, nil
}

// Delete implements punch.ManualPunchRepository.
func (r *manualPunchRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM manual_punches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete manual punch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return punch.ErrManualPunchNotFound
	}

	return nil
}

// ListByRange implements punch.ManualPunchRepository.
func (r *manualPunchRepositoryImpl) ListByRange(ctx context.Context, start, end time.Time, employeeID *string) ([]punch.ManualPunch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + manualPunchColumns + `
		FROM manual_punches
		WHERE date BETWEEN $1 AND $2
		  AND ($3::text IS NULL OR employee_id = $3)
		ORDER BY date ASC, time ASC, id ASC
	`

	rows, err := q.Query(ctx, query, start, end, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.ManualPunch
	for rows.Next() {
		p, err := scanManualPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manual punch: %w", err)
		}
		punches = append(punches, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return punches, nil
}
