package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeNoHourlyPay = errors.New("employee has no hourly salary configured")
)
