package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/comment"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CommentHandler interface {
	ListComments(w http.ResponseWriter, r *http.Request)
	AddComment(w http.ResponseWriter, r *http.Request)
	DeleteComment(w http.ResponseWriter, r *http.Request)
}

type commentHandlerImpl struct {
	commentService comment.CommentService
}

func NewCommentHandler(commentService comment.CommentService) CommentHandler {
	return &commentHandlerImpl{
		commentService: commentService,
	}
}

func (h *commentHandlerImpl) ListComments(w http.ResponseWriter, r *http.Request) {
	filter := comment.CommentFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Date:       r.URL.Query().Get("date"),
	}

	results, err := h.commentService.ListComments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *commentHandlerImpl) AddComment(w http.ResponseWriter, r *http.Request) {
	var req comment.AddCommentRequest

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

	result, err := h.commentService.AddComment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comment added successfully", result)
}

func (h *commentHandlerImpl) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), id, actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Comment deleted successfully"})
}
