package timesheet

import (
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// AggregateResult holds the day buckets and the punches that could not be placed on a day.
type AggregateResult struct {
	Days        []timesheet.DayBucket
	Unparseable []punch.Punch
}

// CalendarDay returns midnight UTC of the calendar day ts falls on in loc.
func CalendarDay(ts time.Time, loc *time.Location) time.Time {
	y, m, d := ts.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOnly keeps the calendar fields of t as midnight UTC, without converting zones.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type dayKey struct {
	employeeID string
	day        time.Time
}

type bucketKey struct {
	personID string
	day      time.Time
}

// Aggregate groups vendor and manual punches into per-person, per-day buckets sorted by
// timestamp. Ignored punches are left out of Punches but still open their day, so a day
// whose punches are all ignored shows up empty. A manual punch at the exact instant of a
// non-ignored vendor punch of the same employee is dropped. Output is deterministic for equal inputs.
func Aggregate(vendor, manual []punch.Punch, ignored []punch.IgnoredMarker, loc *time.Location) AggregateResult {
	if loc == nil {
		loc = time.UTC
	}
	var result AggregateResult

	markers := make(map[dayKey][]punch.IgnoredMarker, len(ignored))
	for _, m := range ignored {
		k := dayKey{employeeID: m.EmployeeID, day: DateOnly(m.Date)}
		markers[k] = append(markers[k], m)
	}

	personOf := make(map[string]string)
	vendorInstants := make(map[string]struct{}, len(vendor))
	for _, p := range vendor {
		if p.Unparseable {
			continue
		}
		if _, ok := personOf[p.EmployeeID]; !ok && p.PersonID != "" {
			personOf[p.EmployeeID] = p.PersonID
		}
		if isIgnored(markers[dayKey{employeeID: p.EmployeeID, day: CalendarDay(p.Timestamp, loc)}], p) {
			continue
		}
		vendorInstants[instantKey(p)] = struct{}{}
	}

	all := make([]punch.Punch, 0, len(vendor)+len(manual))
	for _, p := range vendor {
		if p.Unparseable {
			result.Unparseable = append(result.Unparseable, p)
			continue
		}
		all = append(all, p)
	}
	for _, p := range manual {
		if p.Unparseable {
			result.Unparseable = append(result.Unparseable, p)
			continue
		}
		if _, dup := vendorInstants[instantKey(p)]; dup {
			continue
		}
		all = append(all, p)
	}

	groups := make(map[bucketKey]*timesheet.DayBucket)
	for _, p := range all {
		day := CalendarDay(p.Timestamp, loc)
		person := p.PersonID
		if person == "" {
			person = personOf[p.EmployeeID]
		}
		if person == "" {
			person = p.EmployeeID
		}
		p.PersonID = person

		k := bucketKey{personID: person, day: day}
		bucket, ok := groups[k]
		if !ok {
			bucket = &timesheet.DayBucket{
				EmployeeID: p.EmployeeID,
				PersonID:   person,
				Date:       day,
				Punches:    []punch.Punch{},
			}
			groups[k] = bucket
		}
		if p.EmployeeID < bucket.EmployeeID {
			bucket.EmployeeID = p.EmployeeID
		}

		if isIgnored(markers[dayKey{employeeID: p.EmployeeID, day: day}], p) {
			continue
		}
		bucket.Punches = append(bucket.Punches, p)
	}

	result.Days = make([]timesheet.DayBucket, 0, len(groups))
	for _, bucket := range groups {
		SortPunches(bucket.Punches)
		result.Days = append(result.Days, *bucket)
	}
	SortBuckets(result.Days)

	return result
}

// SortPunches orders punches by timestamp, breaking ties by device, sequence number and id.
func SortPunches(punches []punch.Punch) {
	sort.SliceStable(punches, func(i, j int) bool {
		a, b := punches[i], punches[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.DeviceSerial != b.DeviceSerial {
			return a.DeviceSerial < b.DeviceSerial
		}
		if sa, sb := seq(a), seq(b); sa != sb {
			return sa < sb
		}
		return id(a) < id(b)
	})
}

// SortBuckets orders buckets by date, then employee, then person.
func SortBuckets(days []timesheet.DayBucket) {
	sort.SliceStable(days, func(i, j int) bool {
		a, b := days[i], days[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		return a.PersonID < b.PersonID
	})
}

func isIgnored(markers []punch.IgnoredMarker, p punch.Punch) bool {
	for _, m := range markers {
		if m.Matches(p) {
			return true
		}
	}
	return false
}

func instantKey(p punch.Punch) string {
	return p.EmployeeID + "|" + strconv.FormatInt(p.Timestamp.UnixNano(), 10)
}

func seq(p punch.Punch) int64 {
	if p.SequenceNumber == nil {
		return -1
	}
	return *p.SequenceNumber
}

func id(p punch.Punch) string {
	if p.ID == nil {
		return ""
	}
	return *p.ID
}
