package event

import (
	"context"
)

type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (EventResponse, error)
	UpdateEvent(ctx context.Context, req UpdateEventRequest) (EventResponse, error)
	DeleteEvent(ctx context.Context, id string, actor string) error
	GetEvent(ctx context.Context, id string) (EventResponse, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]EventResponse, error)
}
