package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/google/uuid"
)

// recordTimeout bounds a single audit write once the request is gone.
const recordTimeout = 5 * time.Second

type AuditServiceImpl struct {
	auditRepo audit.AuditRepository
	now       func() time.Time
}

func NewAuditService(auditRepo audit.AuditRepository) *AuditServiceImpl {
	return &AuditServiceImpl{auditRepo: auditRepo, now: time.Now}
}

// Record implements audit.Recorder. The write is detached from the caller's cancellation
// and its failure is only logged: the primary mutation already succeeded.
func (s *AuditServiceImpl) Record(ctx context.Context, actor string, action audit.Action, entityType string, entityID *string, before, after any) {
	id, err := uuid.NewV7()
	if err != nil {
		slog.Error("Failed to generate audit id", "action", action, "entity_type", entityType, "error", err)
		return
	}

	rec := audit.Record{
		ID:         id.String(),
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  s.now().UTC(),
	}
	if rec.Before, err = snapshot(before); err != nil {
		slog.Error("Failed to encode audit snapshot", "action", action, "entity_type", entityType, "error", err)
		return
	}
	if rec.After, err = snapshot(after); err != nil {
		slog.Error("Failed to encode audit snapshot", "action", action, "entity_type", entityType, "error", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := s.auditRepo.Append(writeCtx, rec); err != nil {
		slog.Error("Failed to write audit record",
			"actor", actor,
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
	}
}

// ListAudit implements audit.AuditService.
func (s *AuditServiceImpl) ListAudit(ctx context.Context, filter audit.AuditFilter) (audit.ListAuditResponse, error) {
	if err := filter.Validate(); err != nil {
		return audit.ListAuditResponse{}, err
	}

	records, total, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return audit.ListAuditResponse{}, fmt.Errorf("failed to list audit records: %w", err)
	}

	resp := audit.ListAuditResponse{
		Records:    make([]audit.RecordResponse, 0, len(records)),
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, audit.NewRecordResponse(r))
	}
	return resp, nil
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return b, nil
}
