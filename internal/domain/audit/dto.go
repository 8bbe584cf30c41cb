package audit

import (
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

var validActions = []string{
	string(ActionCreate), string(ActionUpdate), string(ActionDelete),
	string(ActionIgnorePoint), string(ActionUnignorePoint),
}

type AuditFilter struct {
	EntityType *string `json:"entity_type,omitempty"`
	EntityID   *string `json:"entity_id,omitempty"`
	Action     *string `json:"action,omitempty"`
	Actor      *string `json:"actor,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AuditFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		errs.Add("limit", "limit must not exceed 200")
	}
	if f.Action != nil && !validator.IsInSlice(*f.Action, validActions) {
		errs.Add("action", "action must be one of CREATE, UPDATE, DELETE, IGNORE_POINT, UNIGNORE_POINT")
	}

	return errs.Err()
}

type RecordResponse struct {
	ID         string          `json:"id"`
	Actor      string          `json:"actor"`
	Action     Action          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   *string         `json:"entity_id,omitempty"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

type ListAuditResponse struct {
	Records    []RecordResponse `json:"records"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalItems int64            `json:"total_items"`
	TotalPages int              `json:"total_pages"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		Actor:      r.Actor,
		Action:     r.Action,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Before:     r.Before,
		After:      r.After,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}
