package shift

import "errors"

var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrInvalidInterval  = errors.New("shift end time must be after start time")
	ErrOverlapConflict  = errors.New("shift overlaps an existing shift for this employee")
	ErrShiftPeriodPaid  = errors.New("cannot modify a shift in a paid salary period")
)
