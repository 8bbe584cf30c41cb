package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/comment"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
)

type Status string

const (
	StatusAbsence    Status = "absence"
	StatusCorrected  Status = "corrected"
	StatusLeave      Status = "leave"
	StatusVacation   Status = "vacation"
	StatusDayOff     Status = "day-off"
	StatusIncomplete Status = "incomplete"
	StatusOK         Status = "ok"
	StatusOther      Status = "other"
	StatusPending    Status = "pending"
)

// NoWorkedHours is rendered when a day has no complete in/out pair.
const NoWorkedHours = "--:--"

// NameNotFound is the display name for ids the name lookup did not return.
const NameNotFound = "(not found)"

// DayBucket is one employee's punches for one calendar day, sorted by timestamp.
type DayBucket struct {
	EmployeeID   string
	PersonID     string
	DisplayName  string
	Date         time.Time // midnight UTC of the calendar day
	Punches      []punch.Punch
	Comments     []comment.Comment
	OverlayEvent *event.Event
}

func (b DayBucket) ISODate() string {
	return b.Date.Format("2006-01-02")
}
