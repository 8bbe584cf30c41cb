package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	ListAudit(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{
		auditService: auditService,
	}
}

func (h *auditHandlerImpl) ListAudit(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := audit.AuditFilter{
		EntityType: queryPtr(r, "entity_type"),
		EntityID:   queryPtr(r, "entity_id"),
		Action:     queryPtr(r, "action"),
		Actor:      queryPtr(r, "actor"),
	}

	if page := query.Get("page"); page != "" {
		p, err := strconv.Atoi(page)
		if err != nil {
			response.BadRequest(w, "Invalid page parameter", nil)
			return
		}
		filter.Page = p
	}
	if limit := query.Get("limit"); limit != "" {
		l, err := strconv.Atoi(limit)
		if err != nil {
			response.BadRequest(w, "Invalid limit parameter", nil)
			return
		}
		filter.Limit = l
	}

	result, err := h.auditService.ListAudit(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}
