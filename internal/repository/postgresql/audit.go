package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

// Append implements audit.AuditRepository.
func (r *auditRepositoryImpl) Append(ctx context.Context, rec audit.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_log (id, actor, action, entity_type, entity_id, before, after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		rec.ID, rec.Actor, string(rec.Action), rec.EntityType, rec.EntityID, rec.Before, rec.After, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}

	return nil
}

// List implements audit.AuditRepository. Newest records come first.
func (r *auditRepositoryImpl) List(ctx context.Context, filter audit.AuditFilter) ([]audit.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	args := []interface{}{}
	argIdx := 1

	addCondition := func(column string, value *string) {
		if value == nil {
			return
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, *value)
		argIdx++
	}
	addCondition("entity_type", filter.EntityType)
	addCondition("entity_id", filter.EntityID)
	addCondition("action", filter.Action)
	addCondition("actor", filter.Actor)

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_log`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit records: %w", err)
	}

	query := `
		SELECT id, actor, action, entity_type, entity_id, before, after, created_at
		FROM audit_log` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	records := []audit.Record{}
	for rows.Next() {
		var rec audit.Record
		var action string
		err := rows.Scan(
			&rec.ID,
			&rec.Actor,
			&action,
			&rec.EntityType,
			&rec.EntityID,
			&rec.Before,
			&rec.After,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec.Action = audit.Action(action)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, total, nil
}
