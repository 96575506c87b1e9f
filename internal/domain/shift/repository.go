package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access methods for shifts and their pay
// breakdowns. All methods include companyID parameter to prevent
// cross-company data access.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
	List(ctx context.Context, companyID string, filter ShiftFilter) ([]Shift, error)
	ListByEmployeePeriod(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]Shift, error)
	Update(ctx context.Context, s Shift) (Shift, error)
	Delete(ctx context.Context, id string, companyID string) error

	// FindOverlapping returns shifts of the employee whose interval
	// intersects [start, end). Open-ended shifts count as unbounded.
	// excludeID skips the shift being updated.
	FindOverlapping(ctx context.Context, employeeID string, companyID string, start time.Time, end *time.Time, excludeID string) ([]Shift, error)
}
