package punch

import (
	"context"
)

// PunchService manages the locally stored punch overrides.
type PunchService interface {
	CreateManualPunch(ctx context.Context, req CreateManualPunchRequest) (ManualPunchResponse, error)
	UpdateManualPunch(ctx context.Context, req UpdateManualPunchRequest) (ManualPunchResponse, error)
	DeleteManualPunch(ctx context.Context, id string, actor string) error
	ToggleIgnoredPunch(ctx context.Context, req ToggleIgnoredRequest) (ToggleIgnoredResponse, error)
}
