package salary

import (
	"context"
	"time"
)

// SalaryRepository defines data access methods for salary periods, their
// shift links and deductions. All methods include companyID parameter to
// prevent cross-company data access.
type SalaryRepository interface {
	Create(ctx context.Context, period SalaryPeriod) (SalaryPeriod, error)
	GetByID(ctx context.Context, id string, companyID string) (SalaryPeriod, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, companyID string, periodStart time.Time) (SalaryPeriod, error)
	List(ctx context.Context, companyID string, filter SalaryFilter) ([]SalaryPeriod, error)
	Update(ctx context.Context, period SalaryPeriod) (SalaryPeriod, error)
	Delete(ctx context.Context, id string, companyID string) error

	AttachShift(ctx context.Context, periodID string, shiftID string) error
	DetachShift(ctx context.Context, periodID string, shiftID string) error
}
