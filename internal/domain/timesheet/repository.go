package timesheet

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
)

// PunchQuery selects vendor punches. Empty optional fields are not sent.
type PunchQuery struct {
	Start        time.Time
	End          time.Time
	EmployeeID   *string
	DeviceSerial *string
}

// PunchSource is the vendor API returning already fetched punch lists.
type PunchSource interface {
	FetchPunches(ctx context.Context, q PunchQuery) ([]punch.Punch, error)
}

// NameResolver maps employee ids to display names in one batched call.
// Ids it does not know are absent from the result.
type NameResolver interface {
	ResolveNames(ctx context.Context, employeeIDs []string) (map[string]string, error)
}
