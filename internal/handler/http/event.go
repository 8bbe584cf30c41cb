package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EventHandler interface {
	ListEvents(w http.ResponseWriter, r *http.Request)
	GetEvent(w http.ResponseWriter, r *http.Request)
	CreateEvent(w http.ResponseWriter, r *http.Request)
	UpdateEvent(w http.ResponseWriter, r *http.Request)
	DeleteEvent(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	eventService event.EventService
}

func NewEventHandler(eventService event.EventService) EventHandler {
	return &eventHandlerImpl{
		eventService: eventService,
	}
}

func (h *eventHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter := event.EventFilter{
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		EmployeeID: queryPtr(r, "employee_id"),
	}

	results, err := h.eventService.ListEvents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *eventHandlerImpl) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.eventService.GetEvent(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *eventHandlerImpl) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req event.CreateEventRequest

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

	result, err := h.eventService.CreateEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event created successfully", result)
}

func (h *eventHandlerImpl) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req event.UpdateEventRequest

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

	result, err := h.eventService.UpdateEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event updated successfully", result)
}

func (h *eventHandlerImpl) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.eventService.DeleteEvent(r.Context(), id, actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Event deleted successfully"})
}
