package punch

import "errors"

var (
	ErrManualPunchExists   = errors.New("a manual punch already exists for this employee, date and time")
	ErrManualPunchNotFound = errors.New("manual punch not found")
	ErrInvalidIdentity     = errors.New("punch identity requires manual_punch_id or sequence_number with device_serial")
)
