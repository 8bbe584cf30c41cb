package punch

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type punchServiceImpl struct {
	tx          punch.Transactor
	manualRepo  punch.ManualPunchRepository
	ignoredRepo punch.IgnoredPunchRepository
	recorder    audit.Recorder
	invalidator timesheet.Invalidator
}

func NewPunchService(
	tx punch.Transactor,
	manualRepo punch.ManualPunchRepository,
	ignoredRepo punch.IgnoredPunchRepository,
	recorder audit.Recorder,
	invalidator timesheet.Invalidator,
) punch.PunchService {
	return &punchServiceImpl{
		tx:          tx,
		manualRepo:  manualRepo,
		ignoredRepo: ignoredRepo,
		recorder:    recorder,
		invalidator: invalidator,
	}
}

// ==================== MANUAL PUNCHES ====================

// CreateManualPunch implements punch.PunchService.
func (s *punchServiceImpl) CreateManualPunch(ctx context.Context, req punch.CreateManualPunchRequest) (punch.ManualPunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.ManualPunchResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	id, err := uuid.NewV7()
	if err != nil {
		return punch.ManualPunchResponse{}, fmt.Errorf("failed to generate manual punch id: %w", err)
	}

	created, err := s.manualRepo.Create(ctx, punch.ManualPunch{
		ID:         id.String(),
		EmployeeID: req.EmployeeID,
		PersonID:   req.PersonID,
		Date:       date,
		Time:       req.Time,
		CreatedBy:  req.Actor,
	})
	if err != nil {
		if errors.Is(err, punch.ErrManualPunchExists) {
			return punch.ManualPunchResponse{}, err
		}
		return punch.ManualPunchResponse{}, fmt.Errorf("failed to create manual punch: %w", err)
	}

	resp := punch.NewManualPunchResponse(created)
	s.recorder.Record(ctx, req.Actor, audit.ActionCreate, audit.EntityManualPunch, &created.ID, nil, resp)
	s.invalidator.InvalidateDays(ctx, created.EmployeeID, created.Date, created.Date)

	return resp, nil
}

// UpdateManualPunch implements punch.PunchService.
func (s *punchServiceImpl) UpdateManualPunch(ctx context.Context, req punch.UpdateManualPunchRequest) (punch.ManualPunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.ManualPunchResponse{}, err
	}

	var existing, updated punch.ManualPunch
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		existing, err = s.manualRepo.GetByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, punch.ErrManualPunchNotFound) {
				return err
			}
			return fmt.Errorf("failed to get manual punch: %w", err)
		}

		updated, err = s.manualRepo.UpdateTime(ctx, req.ID, req.Time)
		if err != nil {
			if errors.Is(err, punch.ErrManualPunchNotFound) || errors.Is(err, punch.ErrManualPunchExists) {
				return err
			}
			return fmt.Errorf("failed to update manual punch: %w", err)
		}
		return nil
	})
	if err != nil {
		return punch.ManualPunchResponse{}, err
	}

	resp := punch.NewManualPunchResponse(updated)
	s.recorder.Record(ctx, req.Actor, audit.ActionUpdate, audit.EntityManualPunch, &updated.ID,
		punch.NewManualPunchResponse(existing), resp)
	s.invalidator.InvalidateDays(ctx, updated.EmployeeID, updated.Date, updated.Date)

	return resp, nil
}

// DeleteManualPunch implements punch.PunchService.
func (s *punchServiceImpl) DeleteManualPunch(ctx context.Context, id string, actor string) error {
	var existing punch.ManualPunch
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		existing, err = s.manualRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, punch.ErrManualPunchNotFound) {
				return err
			}
			return fmt.Errorf("failed to get manual punch: %w", err)
		}

		if err := s.manualRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, punch.ErrManualPunchNotFound) {
				return err
			}
			return fmt.Errorf("failed to delete manual punch: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recorder.Record(ctx, actor, audit.ActionDelete, audit.EntityManualPunch, &existing.ID,
		punch.NewManualPunchResponse(existing), nil)
	s.invalidator.InvalidateDays(ctx, existing.EmployeeID, existing.Date, existing.Date)

	return nil
}

// ==================== IGNORED PUNCHES ====================

// ToggleIgnoredPunch implements punch.PunchService. Both directions are idempotent; a call
// that changes nothing still leaves one audit record.
func (s *punchServiceImpl) ToggleIgnoredPunch(ctx context.Context, req punch.ToggleIgnoredRequest) (punch.ToggleIgnoredResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.ToggleIgnoredResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	marker := punch.IgnoredMarker{
		EmployeeID: req.EmployeeID,
		Date:       date,
		CreatedBy:  req.Actor,
	}
	if req.ManualPunchID != nil && !validator.IsEmpty(*req.ManualPunchID) {
		marker.ManualPunchID = req.ManualPunchID
	} else {
		marker.SequenceNumber = req.SequenceNumber
		marker.DeviceSerial = req.DeviceSerial
	}

	var (
		changed bool
		err     error
		action  audit.Action
	)
	if req.Ignore {
		id, idErr := uuid.NewV7()
		if idErr != nil {
			return punch.ToggleIgnoredResponse{}, fmt.Errorf("failed to generate ignored punch id: %w", idErr)
		}
		marker.ID = id.String()
		action = audit.ActionIgnorePoint
		changed, err = s.ignoredRepo.Insert(ctx, marker)
	} else {
		action = audit.ActionUnignorePoint
		changed, err = s.ignoredRepo.Remove(ctx, marker)
	}
	if err != nil {
		return punch.ToggleIgnoredResponse{}, fmt.Errorf("failed to toggle ignored punch: %w", err)
	}

	resp := punch.ToggleIgnoredResponse{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Ignored:    req.Ignore,
		Changed:    changed,
	}
	s.recorder.Record(ctx, req.Actor, action, audit.EntityIgnoredPunch, identityOf(marker), nil, req)
	if changed {
		s.invalidator.InvalidateDays(ctx, req.EmployeeID, date, date)
	}

	return resp, nil
}

// identityOf names the ignored punch in the audit log.
func identityOf(m punch.IgnoredMarker) *string {
	var id string
	if m.ManualPunchID != nil {
		id = *m.ManualPunchID
	} else {
		id = fmt.Sprintf("%s:%d", *m.DeviceSerial, *m.SequenceNumber)
	}
	return &id
}
