package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/comment"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// errorMapping ties a domain sentinel to its HTTP answer. An empty message reports err.Error().
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// domainErrors is checked in order with errors.Is
var domainErrors = []errorMapping{
	// Auth errors
	{auth.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized, ""},
	{auth.ErrActorMissing, http.StatusUnauthorized, CodeUnauthorized, ""},
	{auth.ErrAdminPrivilegeRequired, http.StatusForbidden, CodeForbidden, "Admin privilege required"},

	// Override store errors
	{punch.ErrManualPunchExists, http.StatusConflict, CodeDuplicate, "A manual punch already exists at this time"},
	{punch.ErrManualPunchNotFound, http.StatusNotFound, CodeNotFound, "Manual punch not found"},
	{comment.ErrCommentNotFound, http.StatusNotFound, CodeNotFound, "Comment not found"},
	{event.ErrEventNotFound, http.StatusNotFound, CodeNotFound, "Event not found"},

	// Timesheet errors
	{timesheet.ErrUpstreamUnavailable, http.StatusBadGateway, CodeBadGateway, "Time clock vendor is unavailable"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		writeError(w, http.StatusUnprocessableEntity, CodeValidation, "Validation failed", validationErrs.ToMap())
		return
	}

	for _, m := range domainErrors {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.status >= http.StatusInternalServerError {
			slog.Error("Upstream request failed", "error", err)
		}
		message := m.message
		if message == "" {
			message = err.Error()
		}
		writeError(w, m.status, m.code, message, nil)
		return
	}

	slog.Error("Unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}
