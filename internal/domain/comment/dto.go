package comment

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

const maxCommentLength = 2000

type AddCommentRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Text       string `json:"text"`
	Actor      string `json:"-"`
}

func (r *AddCommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		errs.Add("text", "text is required")
	} else if len([]rune(r.Text)) > maxCommentLength {
		errs.Add("text", "text must not exceed 2000 characters")
	}
	if validator.IsEmpty(r.Actor) {
		errs.Add("actor", "actor is required")
	}

	return errs.Err()
}

type CommentFilter struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (f *CommentFilter) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(f.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if _, ok := validator.IsValidDate(f.Date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	return errs.Err()
}

type CommentResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Text       string `json:"text"`
	CreatedBy  string `json:"created_by"`
	CreatedAt  string `json:"created_at"`
}

func NewCommentResponse(c Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		EmployeeID: c.EmployeeID,
		Date:       c.Date.Format(validator.DateLayout),
		Text:       c.Text,
		CreatedBy:  c.CreatedBy,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}
