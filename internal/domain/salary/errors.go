package salary

import "errors"

var (
	ErrSalaryNotFound         = errors.New("salary period not found")
	ErrMissingAggregate       = errors.New("salary period missing for shift contribution")
	ErrInvalidStateTransition = errors.New("invalid salary status transition")
	ErrNoSalariesSelected     = errors.New("no salary periods selected")
	ErrNoShiftsInPeriod       = errors.New("employee has no shifts in this period")
	ErrPeriodLocked           = errors.New("salary period is approved or paid and cannot be recalculated")
)
