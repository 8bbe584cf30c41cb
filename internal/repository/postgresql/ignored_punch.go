package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type ignoredPunchRepositoryImpl struct {
	db *database.DB
}

func NewIgnoredPunchRepository(db *database.DB) punch.IgnoredPunchRepository {
	return &ignoredPunchRepositoryImpl{db: db}
}

// Insert implements punch.IgnoredPunchRepository. The partial unique indexes on
// ignored_punches make a repeated marker a no-op.
func (r *ignoredPunchRepositoryImpl) Insert(ctx context.Context, m punch.IgnoredMarker) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO ignored_punches (id, employee_id, date, manual_punch_id, sequence_number, device_serial, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT DO NOTHING
	`

	tag, err := q.Exec(ctx, query, m.ID, m.EmployeeID, m.Date, m.ManualPunchID, m.SequenceNumber, m.DeviceSerial, m.CreatedBy)
	if err != nil {
		return false, fmt.Errorf("failed to insert ignored punch: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Remove implements punch.IgnoredPunchRepository.
func (r *ignoredPunchRepositoryImpl) Remove(ctx context.Context, m punch.IgnoredMarker) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var (
		query string
		args  []interface{}
	)
	if m.ManualPunchID != nil {
		query = `DELETE FROM ignored_punches WHERE employee_id = $1 AND date = $2 AND manual_punch_id = $3`
		args = []interface{}{m.EmployeeID, m.Date, *m.ManualPunchID}
	} else {
		query = `
			DELETE FROM ignored_punches
			WHERE employee_id = $1 AND date = $2 AND sequence_number = $3 AND device_serial = $4
		`
		args = []interface{}{m.EmployeeID, m.Date, m.SequenceNumber, m.DeviceSerial}
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to remove ignored punch: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByRange implements punch.IgnoredPunchRepository.
func (r *ignoredPunchRepositoryImpl) ListByRange(ctx context.Context, start, end time.Time, employeeID *string) ([]punch.IgnoredMarker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, manual_punch_id, sequence_number, device_serial, created_by, created_at
		FROM ignored_punches
		WHERE date BETWEEN $1 AND $2
		  AND ($3::text IS NULL OR employee_id = $3)
		ORDER BY date ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, start, end, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ignored punches: %w", err)
	}
	defer rows.Close()

	var markers []punch.IgnoredMarker
	for rows.Next() {
		var m punch.IgnoredMarker
		err := rows.Scan(
			&m.ID,
			&m.EmployeeID,
			&m.Date,
			&m.ManualPunchID,
			&m.SequenceNumber,
			&m.DeviceSerial,
			&m.CreatedBy,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ignored punch: %w", err)
		}
		markers = append(markers, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return markers, nil
}
