package punch

import (
	"context"
	"time"
)

// Transactor runs fn atomically. Repository calls made with the ctx passed to fn take part
// in the same unit of work.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ManualPunchRepository interface {
	// Create fails with ErrManualPunchExists on a duplicate (employee_id, date, time).
	Create(ctx context.Context, p ManualPunch) (ManualPunch, error)
	// GetByID locks the row until the surrounding transaction ends, when there is one.
	GetByID(ctx context.Context, id string) (ManualPunch, error)
	UpdateTime(ctx context.Context, id string, newTime string) (ManualPunch, error)
	Delete(ctx context.Context, id string) error
	ListByRange(ctx context.Context, start, end time.Time, employeeID *string) ([]ManualPunch, error)
}

type IgnoredPunchRepository interface {
	// Insert is a no-op returning false when the marker already exists.
	Insert(ctx context.Context, m IgnoredMarker) (bool, error)
	// Remove returns false when there was nothing to remove.
	Remove(ctx context.Context, m IgnoredMarker) (bool, error)
	ListByRange(ctx context.Context, start, end time.Time, employeeID *string) ([]IgnoredMarker, error)
}
