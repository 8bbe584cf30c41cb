package timesheet

import (
	"context"
	"time"
)

// Invalidator is told about every write that changes an employee's days.
type Invalidator interface {
	InvalidateDays(ctx context.Context, employeeID string, start, end time.Time)
}

type TimesheetService interface {
	Invalidator

	// GetDays aggregates and classifies every employee day in the filter range.
	GetDays(ctx context.Context, filter DayFilter) (ListDaysResponse, error)
}
