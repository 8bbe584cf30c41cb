package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", validator.ValidationErrors{{Field: "date", Message: "invalid"}}, http.StatusUnprocessableEntity, CodeValidation, "Validation failed"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized, auth.ErrInvalidToken.Error()},
		{"not admin", auth.ErrAdminPrivilegeRequired, http.StatusForbidden, CodeForbidden, "Admin privilege required"},
		{"duplicate wrapped", fmt.Errorf("create: %w", punch.ErrManualPunchExists), http.StatusConflict, CodeDuplicate, "A manual punch already exists at this time"},
		{"event not found", event.ErrEventNotFound, http.StatusNotFound, CodeNotFound, "Event not found"},
		{"upstream", fmt.Errorf("%w: dial tcp", timesheet.ErrUpstreamUnavailable), http.StatusBadGateway, CodeBadGateway, "Time clock vendor is unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, validator.ValidationErrors{{Field: "time", Message: "must be HH:MM"}})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"time": "must be HH:MM"}, body.Error.Details)
}
