package event

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type eventServiceImpl struct {
	eventRepo   event.EventRepository
	recorder    audit.Recorder
	invalidator timesheet.Invalidator
}

func NewEventService(eventRepo event.EventRepository, recorder audit.Recorder, invalidator timesheet.Invalidator) event.EventService {
	return &eventServiceImpl{
		eventRepo:   eventRepo,
		recorder:    recorder,
		invalidator: invalidator,
	}
}

// CreateEvent implements event.EventService.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req event.CreateEventRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	id, err := uuid.NewV7()
	if err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to generate event id: %w", err)
	}

	created, err := s.eventRepo.Create(ctx, event.Event{
		ID:         id.String(),
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		StartDate:  start,
		EndDate:    end,
		EventType:  strings.TrimSpace(req.EventType),
		Category:   req.Category,
		CreatedBy:  req.Actor,
	})
	if err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to create event: %w", err)
	}

	resp := event.NewEventResponse(created)
	s.recorder.Record(ctx, req.Actor, audit.ActionCreate, audit.EntityEvent, &created.ID, nil, resp)
	s.invalidator.InvalidateDays(ctx, created.EmployeeID, created.StartDate, created.EndDate)

	return resp, nil
}

// UpdateEvent implements event.EventService. The employee of an event never changes.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, req event.UpdateEventRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	existing, err := s.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return event.EventResponse{}, err
		}
		return event.EventResponse{}, fmt.Errorf("failed to get event: %w", err)
	}

	next := existing
	next.StartDate = start
	next.EndDate = end
	next.EventType = strings.TrimSpace(req.EventType)
	next.Category = req.Category

	updated, err := s.eventRepo.Update(ctx, next)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return event.EventResponse{}, err
		}
		return event.EventResponse{}, fmt.Errorf("failed to update event: %w", err)
	}

	resp := event.NewEventResponse(updated)
	s.recorder.Record(ctx, req.Actor, audit.ActionUpdate, audit.EntityEvent, &updated.ID,
		event.NewEventResponse(existing), resp)

	// Both the old and the new range may have changed status.
	s.invalidator.InvalidateDays(ctx, existing.EmployeeID, existing.StartDate, existing.EndDate)
	s.invalidator.InvalidateDays(ctx, updated.EmployeeID, updated.StartDate, updated.EndDate)

	return resp, nil
}

// DeleteEvent implements event.EventService.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id string, actor string) error {
	existing, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return err
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.recorder.Record(ctx, actor, audit.ActionDelete, audit.EntityEvent, &existing.ID, event.NewEventResponse(existing), nil)
	s.invalidator.InvalidateDays(ctx, existing.EmployeeID, existing.StartDate, existing.EndDate)

	return nil
}

// GetEvent implements event.EventService.
func (s *eventServiceImpl) GetEvent(ctx context.Context, id string) (event.EventResponse, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return event.EventResponse{}, err
		}
		return event.EventResponse{}, fmt.Errorf("failed to get event: %w", err)
	}
	return event.NewEventResponse(e), nil
}

// ListEvents implements event.EventService.
func (s *eventServiceImpl) ListEvents(ctx context.Context, filter event.EventFilter) ([]event.EventResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	start, _ := validator.IsValidDate(filter.StartDate)
	end, _ := validator.IsValidDate(filter.EndDate)

	events, err := s.eventRepo.ListOverlapping(ctx, start, end, filter.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	resp := make([]event.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, event.NewEventResponse(e))
	}
	return resp, nil
}
