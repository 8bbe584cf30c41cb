package timesheet

import (
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
)

func bucketWith(t *testing.T, date string, times ...string) timesheet.DayBucket {
	t.Helper()
	b := timesheet.DayBucket{EmployeeID: "12345", PersonID: "12345", Date: day(t, date), Punches: []punch.Punch{}}
	for i, clock := range times {
		b.Punches = append(b.Punches, vendorPunch(t, "12345", date, clock, int64(i+1)))
	}
	return b
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		times []string
		want  timesheet.Status
	}{
		{"no punches", nil, timesheet.StatusAbsence},
		{"single punch", []string{"08:00"}, timesheet.StatusPending},
		{"one pair", []string{"08:00", "12:00"}, timesheet.StatusPending},
		{"three punches", []string{"08:00", "12:00", "13:00"}, timesheet.StatusPending},
		{"full day", []string{"08:00", "12:00", "13:00", "17:00"}, timesheet.StatusOK},
		{"five punches", []string{"08:00", "12:00", "13:00", "17:00", "18:00"}, timesheet.StatusPending},
		{"three pairs", []string{"08:00", "10:00", "10:15", "12:00", "13:00", "17:00"}, timesheet.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Classify(bucketWith(t, "2025-01-10", c.times...)))
		})
	}
}

func TestClassify_OverlayWins(t *testing.T) {
	b := bucketWith(t, "2025-01-10", "08:00", "12:00", "13:00", "17:00")
	b.OverlayEvent = &event.Event{EventType: "Vacation", Category: event.CategoryFixed}

	assert.Equal(t, timesheet.StatusVacation, Classify(b))
}

func TestClassify_InvalidOverlayIgnored(t *testing.T) {
	b := bucketWith(t, "2025-01-10")
	b.OverlayEvent = &event.Event{EventType: "vacation", Category: "WHATEVER"}

	assert.Equal(t, timesheet.StatusAbsence, Classify(b))
}

func TestEventStatus(t *testing.T) {
	assert.Equal(t, timesheet.StatusDayOff, EventStatus(" Day-Off "))
	assert.Equal(t, timesheet.StatusLeave, EventStatus("LEAVE"))
	assert.Equal(t, timesheet.StatusOther, EventStatus("   "))
	assert.Equal(t, timesheet.Status("training"), EventStatus("Training"))
}
