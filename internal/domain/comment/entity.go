package comment

import "time"

// Comment is a free-text note attached to one employee's day. Comments are append-only.
type Comment struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Text       string
	CreatedBy  string
	CreatedAt  time.Time
}
