package punch

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// ========================================
// MANUAL PUNCH DTOs
// ========================================

type CreateManualPunchRequest struct {
	EmployeeID string  `json:"employee_id"`
	PersonID   *string `json:"person_id,omitempty"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Time       string  `json:"time"` // HH:MM
	Actor      string  `json:"-"`
}

func (r *CreateManualPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	if !validator.IsValidClock(r.Time) {
		errs.Add("time", "time must be HH:MM")
	}
	if validator.IsEmpty(r.Actor) {
		errs.Add("actor", "actor is required")
	}

	return errs.Err()
}

type UpdateManualPunchRequest struct {
	ID    string `json:"-"`
	Time  string `json:"time"`
	Actor string `json:"-"`
}

func (r *UpdateManualPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if !validator.IsValidClock(r.Time) {
		errs.Add("time", "time must be HH:MM")
	}
	if validator.IsEmpty(r.Actor) {
		errs.Add("actor", "actor is required")
	}

	return errs.Err()
}

type ManualPunchResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	PersonID   *string `json:"person_id,omitempty"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	CreatedBy  string  `json:"created_by"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func NewManualPunchResponse(m ManualPunch) ManualPunchResponse {
	return ManualPunchResponse{
		ID:         m.ID,
		EmployeeID: m.EmployeeID,
		PersonID:   m.PersonID,
		Date:       m.Date.Format(validator.DateLayout),
		Time:       m.Time,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  m.UpdatedAt.Format(time.RFC3339),
	}
}

// ========================================
// IGNORED PUNCH DTOs
// ========================================

type ToggleIgnoredRequest struct {
	EmployeeID     string  `json:"employee_id"`
	Date           string  `json:"date"`
	ManualPunchID  *string `json:"manual_punch_id,omitempty"`
	SequenceNumber *int64  `json:"sequence_number,omitempty"`
	DeviceSerial   *string `json:"device_serial,omitempty"`
	Ignore         bool    `json:"ignore"`
	Actor          string  `json:"-"`
}

func (r *ToggleIgnoredRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD")
	}

	hasManual := r.ManualPunchID != nil && !validator.IsEmpty(*r.ManualPunchID)
	hasVendor := r.SequenceNumber != nil && r.DeviceSerial != nil && !validator.IsEmpty(*r.DeviceSerial)
	if hasManual == hasVendor {
		errs.Add("identity", ErrInvalidIdentity.Error())
	}
	if validator.IsEmpty(r.Actor) {
		errs.Add("actor", "actor is required")
	}

	return errs.Err()
}

type ToggleIgnoredResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Ignored    bool   `json:"ignored"`
	Changed    bool   `json:"changed"`
}
