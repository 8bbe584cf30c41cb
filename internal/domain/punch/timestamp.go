package punch

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// /Date(1700000000000-0300)/ ; the offset group is optional and ignored.
var legacyDateRegex = regexp.MustCompile(`^/Date\((-?\d+)(?:[+-]\d{4})?\)/$`)

// ParseVendorTimestamp reads the timestamp encodings the clock vendor emits.
// The legacy /Date(ms±hhmm)/ form is read from its epoch milliseconds alone.
// The positional form dd/mm/yyyy[ hh:mm[:ss]] is read in loc, missing time is midnight.
func ParseVendorTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := legacyDateRegex.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	}

	return parseDayMonthYear(s, loc)
}

func parseDayMonthYear(s string, loc *time.Location) (time.Time, bool) {
	datePart, timePart, _ := strings.Cut(s, " ")

	dmy := strings.Split(datePart, "/")
	if len(dmy) != 3 {
		return time.Time{}, false
	}
	day, errD := strconv.Atoi(dmy[0])
	month, errM := strconv.Atoi(dmy[1])
	year, errY := strconv.Atoi(dmy[2])
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}, false
	}

	var hms [3]int
	if timePart = strings.TrimSpace(timePart); timePart != "" {
		parts := strings.Split(timePart, ":")
		if len(parts) > 3 {
			return time.Time{}, false
		}
		for i, part := range parts {
			v, err := strconv.Atoi(part)
			if err != nil {
				return time.Time{}, false
			}
			hms[i] = v
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || hms[0] > 23 || hms[1] > 59 || hms[2] > 59 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hms[0], hms[1], hms[2], 0, loc)
	// time.Date normalizes 31/02 into March
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// CombineDateClock builds the instant of a manual punch from YYYY-MM-DD and HH:MM in loc.
func CombineDateClock(isoDate, clock string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02 15:04", isoDate+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
