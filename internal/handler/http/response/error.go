package response

import (
	"errors"
	"net/http"

	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
	"github.com/shiftpay/payroll-engine-go/internal/domain/employee"
	"github.com/shiftpay/payroll-engine-go/internal/domain/finance"
	"github.com/shiftpay/payroll-engine-go/internal/domain/payrate"
	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/shiftpay/payroll-engine-go/internal/domain/shift"
	"github.com/shiftpay/payroll-engine-go/internal/domain/taxconfig"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidInterval):
		BadRequest(w, "Shift end time must be after start time", nil)
	case errors.Is(err, shift.ErrOverlapConflict):
		Conflict(w, "Shift overlaps an existing shift for this employee")
	case errors.Is(err, shift.ErrShiftPeriodPaid):
		Conflict(w, "Shift belongs to a paid salary period")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary period not found")
	case errors.Is(err, salary.ErrInvalidStateTransition):
		Conflict(w, "Salary period cannot make this status transition")
	case errors.Is(err, salary.ErrNoSalariesSelected):
		BadRequest(w, "No salary periods selected", nil)
	case errors.Is(err, salary.ErrNoShiftsInPeriod):
		BadRequest(w, "Employee has no shifts in this period", nil)
	case errors.Is(err, salary.ErrPeriodLocked):
		Conflict(w, "Salary period is approved or paid and cannot be recalculated")

	// Rate tier domain errors
	case errors.Is(err, payrate.ErrRateTierNotFound):
		NotFound(w, "Rate tier not found")
	case errors.Is(err, payrate.ErrRateTierExists):
		Conflict(w, "An active rate tier already exists for this kind")
	case errors.Is(err, payrate.ErrInvalidRateKind):
		BadRequest(w, "Invalid rate tier kind", nil)

	// Tax config domain errors
	case errors.Is(err, taxconfig.ErrTaxConfigNotFound):
		NotFound(w, "Tax configuration not found")
	case errors.Is(err, taxconfig.ErrActiveTaxConfigExists):
		Conflict(w, "An active tax configuration already exists for this country")
	case errors.Is(err, taxconfig.ErrTaxConfigInUse):
		Conflict(w, "Tax configuration is referenced by automation settings")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNoHourlyPay):
		BadRequest(w, "Employee has no hourly salary configured", nil)

	// Automation domain errors
	case errors.Is(err, automation.ErrSettingsNotFound):
		NotFound(w, "Payroll automation settings not found")

	// Finance domain errors
	case errors.Is(err, finance.ErrLedgerEntryNotFound):
		NotFound(w, "Ledger entry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
