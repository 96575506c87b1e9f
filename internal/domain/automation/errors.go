package automation

import "errors"

var ErrSettingsNotFound = errors.New("payroll automation settings not found")
