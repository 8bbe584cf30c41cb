package audit

import "context"

type AuditRepository interface {
	Append(ctx context.Context, r Record) error
	List(ctx context.Context, filter AuditFilter) ([]Record, int64, error)
}
