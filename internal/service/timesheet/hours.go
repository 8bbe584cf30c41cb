package timesheet

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// WorkedDuration sums (punches[0],punches[1]), (punches[2],punches[3]), ...
// A trailing unpaired punch adds nothing. ok is false when no complete pair exists.
func WorkedDuration(b timesheet.DayBucket) (total time.Duration, ok bool) {
	for i := 0; i+1 < len(b.Punches); i += 2 {
		total += b.Punches[i+1].Timestamp.Sub(b.Punches[i].Timestamp)
		ok = true
	}
	return total, ok
}

// FormatWorked renders the worked duration as HH:MM, or "--:--" when there is nothing to sum.
func FormatWorked(b timesheet.DayBucket) string {
	total, ok := WorkedDuration(b)
	if !ok {
		return timesheet.NoWorkedHours
	}
	return FormatDuration(total)
}

// FormatDuration renders d as HH:MM. Hours are not clamped at 24.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
