package timesheet

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// MaxRangeDays bounds a single day query.
const MaxRangeDays = 62

type DayFilter struct {
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	DeviceSerial *string `json:"device_serial,omitempty"`
}

func (f *DayFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.ValidateDateRange(&errs, "start_date", f.StartDate, "end_date", f.EndDate)
	if len(errs) == 0 {
		start, _ := validator.IsValidDate(f.StartDate)
		end, _ := validator.IsValidDate(f.EndDate)
		if end.Sub(start) > MaxRangeDays*24*time.Hour {
			errs.Add("end_date", ErrRangeTooLarge.Error())
		}
	}
	if f.EmployeeID != nil && validator.IsEmpty(*f.EmployeeID) {
		f.EmployeeID = nil
	}
	if f.DeviceSerial != nil && validator.IsEmpty(*f.DeviceSerial) {
		f.DeviceSerial = nil
	}

	return errs.Err()
}

// CacheKey normalizes the filter into a stable cache key.
func (f DayFilter) CacheKey() string {
	var b strings.Builder
	b.WriteString(f.StartDate)
	b.WriteString("|")
	b.WriteString(f.EndDate)
	b.WriteString("|")
	if f.EmployeeID != nil {
		b.WriteString(*f.EmployeeID)
	}
	b.WriteString("|")
	if f.DeviceSerial != nil {
		b.WriteString(*f.DeviceSerial)
	}
	return b.String()
}

type PunchResponse struct {
	ID             *string `json:"id,omitempty"`
	Time           string  `json:"time"`      // HH:MM in the configured location
	Timestamp      string  `json:"timestamp"` // RFC3339
	DeviceSerial   string  `json:"device_serial"`
	SequenceNumber *int64  `json:"sequence_number,omitempty"`
	Manual         bool    `json:"manual"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

type EventLabel struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type DayResponse struct {
	EmployeeID   string            `json:"employee_id"`
	PersonID     string            `json:"person_id"`
	DisplayName  string            `json:"display_name"`
	Date         string            `json:"date"`
	Status       Status            `json:"status"`
	WorkedHours  string            `json:"worked_hours"`
	Punches      []PunchResponse   `json:"punches"`
	Comments     []CommentResponse `json:"comments,omitempty"`
	OverlayEvent *EventLabel       `json:"overlay_event,omitempty"`
}

type UnparseablePunch struct {
	EmployeeID   string `json:"employee_id"`
	DeviceSerial string `json:"device_serial"`
	Raw          string `json:"raw"`
}

type ListDaysResponse struct {
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Days        []DayResponse      `json:"days"`
	Unparseable []UnparseablePunch `json:"unparseable,omitempty"`
	GeneratedAt string             `json:"generated_at"`
}
