package salary

import "context"

// Aggregator keeps monthly salary periods consistent with shift mutations.
// The shift service calls it after every create, update and delete.
// Contributions targeting a Paid period are rejected so its completed
// ledger entry cannot go stale.
type Aggregator interface {
	AddShift(ctx context.Context, companyID string, employeeID string, c ShiftContribution) error
	AmendShift(ctx context.Context, companyID string, employeeID string, old ShiftContribution, updated ShiftContribution) error
	RemoveShift(ctx context.Context, companyID string, employeeID string, c ShiftContribution) error
}

type SalaryService interface {
	Aggregator

	CalculateSalary(ctx context.Context, employeeID string, req CalculatePeriodRequest) (SalaryResponse, error)
	CalculateSalariesForPeriod(ctx context.Context, req CalculatePeriodRequest) (BatchCalculateResult, error)
	GetSalary(ctx context.Context, id string) (SalaryResponse, error)
	ListSalaries(ctx context.Context, filter SalaryFilter) ([]SalaryResponse, error)
	ListPendingApproval(ctx context.Context, req CalculatePeriodRequest) ([]SalaryResponse, error)
	ApproveSalary(ctx context.Context, id string, req ApproveSalaryRequest) (SalaryResponse, error)
	RejectSalary(ctx context.Context, id string, req RejectSalaryRequest) (SalaryResponse, error)
	MarkSalariesPaid(ctx context.Context, req MarkPaidRequest) (MarkPaidResult, error)
	GetPeriodStats(ctx context.Context, req CalculatePeriodRequest) (PeriodStatsResponse, error)

	// Company-scoped entry points for the automation sweep, which runs
	// without a request context.
	CalculateForCompany(ctx context.Context, companyID string, req CalculatePeriodRequest) (BatchCalculateResult, error)
	ApproveAllForCompany(ctx context.Context, companyID string, req CalculatePeriodRequest) (int, error)
	MarkPaidForCompany(ctx context.Context, companyID string, req CalculatePeriodRequest) (MarkPaidResult, error)
}
