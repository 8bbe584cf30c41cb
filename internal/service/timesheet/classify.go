package timesheet

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// A complete day is two in/out pairs: entry, lunch out, lunch in, exit.
const minCompletePunches = 4

// Classify derives the status of a day. An overlay event always wins over punch counts.
func Classify(b timesheet.DayBucket) timesheet.Status {
	if b.OverlayEvent != nil && b.OverlayEvent.Category.IsValid() {
		return EventStatus(b.OverlayEvent.EventType)
	}

	n := len(b.Punches)
	switch {
	case n == 0:
		return timesheet.StatusAbsence
	case n < minCompletePunches || n%2 != 0:
		return timesheet.StatusPending
	default:
		return timesheet.StatusOK
	}
}

// EventStatus turns a free-form event type into a status label.
func EventStatus(eventType string) timesheet.Status {
	label := strings.ToLower(strings.TrimSpace(eventType))
	if label == "" {
		return timesheet.StatusOther
	}
	return timesheet.Status(label)
}
