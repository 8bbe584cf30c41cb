package event

import (
	"time"
)

type Category string

const (
	CategoryPeriod Category = "PERIOD"
	CategoryFixed  Category = "FIXED"
)

func (c Category) IsValid() bool {
	return c == CategoryPeriod || c == CategoryFixed
}

// Event is an HR-entered status covering an inclusive range of calendar days.
type Event struct {
	ID         string
	EmployeeID string
	StartDate  time.Time // midnight UTC
	EndDate    time.Time // midnight UTC, inclusive
	EventType  string
	Category   Category
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether day (midnight UTC) lies within the event range.
func (e Event) Covers(day time.Time) bool {
	return !day.Before(e.StartDate) && !day.After(e.EndDate)
}
