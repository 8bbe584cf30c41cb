package audit

import "context"

// Recorder writes audit records. Record never fails the caller.
type Recorder interface {
	Record(ctx context.Context, actor string, action Action, entityType string, entityID *string, before, after any)
}

type AuditService interface {
	ListAudit(ctx context.Context, filter AuditFilter) (ListAuditResponse, error)
}
