package event

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type CreateEventRequest struct {
	EmployeeID string   `json:"employee_id"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	EventType  string   `json:"event_type"`
	Category   Category `json:"category"`
	Actor      string   `json:"-"`
}

func (r *CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	validatePayload(&errs, r.StartDate, r.EndDate, r.EventType, &r.Category)
	if validator.IsEmpty(r.Actor) {
		errs.Add("actor", "actor is required")
	}

	return errs.Err()
}

type UpdateEventRequest struct {
	ID        string   `json:"-"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	EventType string   `json:"event_type"`
	Category  Category `json:"category"`
	Actor     string   `json:"-"`
}

func (r *UpdateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	validatePayload(&errs, r.StartDate, r.EndDate, r.EventType, &r.Category)
	if validator.IsEmpty(r.Actor) {
		errs.Add("actor", "actor is required")
	}

	return errs.Err()
}

// validatePayload checks the fields shared by create and update and upper-cases the category.
func validatePayload(errs *validator.ValidationErrors, start, end, eventType string, category *Category) {
	validator.ValidateDateRange(errs, "start_date", start, "end_date", end)

	if validator.IsEmpty(eventType) {
		errs.Add("event_type", "event_type is required")
	}

	*category = Category(strings.ToUpper(strings.TrimSpace(string(*category))))
	if !category.IsValid() {
		errs.Add("category", "category must be PERIOD or FIXED")
		return
	}
	if *category == CategoryFixed && start != end {
		errs.Add("end_date", "a FIXED event covers a single day")
	}
}

type EventFilter struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors
	validator.ValidateDateRange(&errs, "start_date", f.StartDate, "end_date", f.EndDate)
	return errs.Err()
}

type EventResponse struct {
	ID         string   `json:"id"`
	EmployeeID string   `json:"employee_id"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	EventType  string   `json:"event_type"`
	Category   Category `json:"category"`
	CreatedBy  string   `json:"created_by"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

func NewEventResponse(e Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		StartDate:  e.StartDate.Format(validator.DateLayout),
		EndDate:    e.EndDate.Format(validator.DateLayout),
		EventType:  e.EventType,
		Category:   e.Category,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
}
