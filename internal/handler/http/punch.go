package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PunchHandler interface {
	CreateManualPunch(w http.ResponseWriter, r *http.Request)
	UpdateManualPunch(w http.ResponseWriter, r *http.Request)
	DeleteManualPunch(w http.ResponseWriter, r *http.Request)
	ToggleIgnored(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// ==================== MANUAL PUNCH HANDLERS ====================

func (h *punchHandlerImpl) CreateManualPunch(w http.ResponseWriter, r *http.Request) {
	var req punch.CreateManualPunchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.Actor = actor

	result, err := h.punchService.CreateManualPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual punch created successfully", result)
}

func (h *punchHandlerImpl) UpdateManualPunch(w http.ResponseWriter, r *http.Request) {
	var req punch.UpdateManualPunchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.Actor = actor

	result, err := h.punchService.UpdateManualPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manual punch updated successfully", result)
}

func (h *punchHandlerImpl) DeleteManualPunch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.punchService.DeleteManualPunch(r.Context(), id, actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Manual punch deleted successfully"})
}

// ==================== IGNORED PUNCH HANDLERS ====================

func (h *punchHandlerImpl) ToggleIgnored(w http.ResponseWriter, r *http.Request) {
	var req punch.ToggleIgnoredRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.Actor = actor

	result, err := h.punchService.ToggleIgnoredPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
