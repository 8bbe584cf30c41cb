package timesheet

import "errors"

var (
	// ErrUpstreamUnavailable means the vendor punch source failed; it is never reported as "no punches".
	ErrUpstreamUnavailable = errors.New("time clock vendor is unavailable")
	ErrRangeTooLarge       = errors.New("date range too large")
)
