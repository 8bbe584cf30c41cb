package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/sse"
)

type TimesheetHandler interface {
	ListDays(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	jwtService       jwt.Service
	hub              *sse.Hub
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, jwtService jwt.Service, hub *sse.Hub) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
		jwtService:       jwtService,
		hub:              hub,
	}
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// queryPtr returns the trimmed query value, or nil when it is absent or blank.
func queryPtr(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func (h *timesheetHandlerImpl) ListDays(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.DayFilter{
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
		EmployeeID:   queryPtr(r, "employee_id"),
		DeviceSerial: queryPtr(r, "device_serial"),
	}

	result, err := h.timesheetService.GetDays(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StreamToken issues a short-lived token for the SSE stream, since EventSource
// cannot send an Authorization header.
func (h *timesheetHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes day invalidations to connected timesheet screens
func (h *timesheetHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	username, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.TopicTimesheet)
	defer cleanup()

	connected, _ := json.Marshal(map[string]string{"status": "connected", "username": username})
	fmt.Fprintf(w, "event: connected\ndata: %s\n\n", connected)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
