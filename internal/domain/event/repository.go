package event

import (
	"context"
	"time"
)

type EventRepository interface {
	Create(ctx context.Context, e Event) (Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	Update(ctx context.Context, e Event) (Event, error)
	Delete(ctx context.Context, id string) error
	// ListOverlapping returns events whose range intersects [start, end].
	ListOverlapping(ctx context.Context, start, end time.Time, employeeID *string) ([]Event, error)
}
