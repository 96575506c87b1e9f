package salary

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
	"github.com/shiftpay/payroll-engine-go/internal/domain/employee"
	"github.com/shiftpay/payroll-engine-go/internal/domain/finance"
	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/shiftpay/payroll-engine-go/internal/domain/shift"
	"github.com/shiftpay/payroll-engine-go/internal/domain/taxconfig"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
	"github.com/shiftpay/payroll-engine-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type SalaryServiceImpl struct {
	db           *database.DB
	salaryRepo   salary.SalaryRepository
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	taxRepo      taxconfig.TaxConfigRepository
	settingsRepo automation.SettingsRepository
	ledger       finance.LedgerSink
	locks        *periodLocks
	runTx        txRunner
}

// txRunner executes fn inside a database transaction.
type txRunner func(ctx context.Context, fn func(tx pgx.Tx) error) error

func NewSalaryService(
	db *database.DB,
	salaryRepo salary.SalaryRepository,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	taxRepo taxconfig.TaxConfigRepository,
	settingsRepo automation.SettingsRepository,
	ledger finance.LedgerSink,
) salary.SalaryService {
	return &SalaryServiceImpl{
		db:           db,
		salaryRepo:   salaryRepo,
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		taxRepo:      taxRepo,
		settingsRepo: settingsRepo,
		ledger:       ledger,
		locks:        newPeriodLocks(),
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Helper to get company_id from JWT context
func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func (s *SalaryServiceImpl) CalculateSalary(ctx context.Context, employeeID string, req salary.CalculatePeriodRequest) (salary.SalaryResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	period, err := s.calculateEmployee(ctx, companyID, employeeID, req)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.ToSalaryResponse(period), nil
}

// calculateEmployee rebuilds one employee's salary period from the shifts
// recorded in that month.
func (s *SalaryServiceImpl) calculateEmployee(ctx context.Context, companyID, employeeID string, req salary.CalculatePeriodRequest) (salary.SalaryPeriod, error) {
	periodStart := req.PeriodStart()
	periodEnd := periodStart.AddDate(0, 1, 0)

	unlock := s.locks.lock(companyID, employeeID, periodStart)
	defer unlock()

	shifts, err := s.shiftRepo.ListByEmployeePeriod(ctx, employeeID, companyID, periodStart, periodEnd)
	if err != nil {
		return salary.SalaryPeriod{}, err
	}
	if len(shifts) == 0 {
		return salary.SalaryPeriod{}, salary.ErrNoShiftsInPeriod
	}

	config, err := s.resolveTaxConfig(ctx, companyID, employeeID)
	if err != nil {
		return salary.SalaryPeriod{}, err
	}

	totalHours := decimal.Zero
	totalPay := decimal.Zero
	shiftIDs := make([]string, 0, len(shifts))
	for _, item := range shifts {
		totalHours = totalHours.Add(item.HoursWorked)
		totalPay = totalPay.Add(item.TotalPay)
		shiftIDs = append(shiftIDs, item.ID)
	}

	existing, err := s.salaryRepo.GetByEmployeePeriod(ctx, employeeID, companyID, periodStart)
	switch {
	case errors.Is(err, salary.ErrSalaryNotFound):
		period := salary.SalaryPeriod{
			CompanyID:   companyID,
			EmployeeID:  employeeID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			TotalHours:  totalHours,
			TotalPay:    totalPay,
			ShiftIDs:    shiftIDs,
			Status:      salary.StatusDraft,
		}
		applyTax(&period, config)
		return s.salaryRepo.Create(ctx, period)
	case err != nil:
		return salary.SalaryPeriod{}, err
	}

	// Calculation never regresses an approved or paid period.
	if existing.Status == salary.StatusApproved || existing.Status == salary.StatusPaid {
		return salary.SalaryPeriod{}, salary.ErrPeriodLocked
	}

	existing.TotalHours = totalHours
	existing.TotalPay = totalPay
	existing.ShiftIDs = shiftIDs
	existing.Status = salary.StatusDraft
	applyTax(&existing, config)
	return s.salaryRepo.Update(ctx, existing)
}

func applyTax(period *salary.SalaryPeriod, config taxconfig.TaxConfig) {
	result := computeTax(period.GrossPay(), config)
	period.TaxDeduction = result.TaxDeduction
	period.OtherDeductions = result.OtherDeductions
	period.NetPay = result.NetPay
}

func (s *SalaryServiceImpl) CalculateSalariesForPeriod(ctx context.Context, req salary.CalculatePeriodRequest) (salary.BatchCalculateResult, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return salary.BatchCalculateResult{}, err
	}
	return s.CalculateForCompany(ctx, companyID, req)
}

func (s *SalaryServiceImpl) CalculateForCompany(ctx context.Context, companyID string, req salary.CalculatePeriodRequest) (salary.BatchCalculateResult, error) {
	if err := req.Validate(); err != nil {
		return salary.BatchCalculateResult{}, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return salary.BatchCalculateResult{}, err
	}

	result := salary.BatchCalculateResult{Errors: []salary.BatchCalculateError{}}
	for _, emp := range employees {
		_, err := s.calculateEmployee(ctx, companyID, emp.ID, req)
		switch {
		case err == nil:
			result.CalculatedCount++
		case errors.Is(err, salary.ErrNoShiftsInPeriod):
			// Employees with no shifts are skipped silently.
		default:
			// One employee's failure never aborts the batch.
			result.Errors = append(result.Errors, salary.BatchCalculateError{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName(),
				Error:        err.Error(),
			})
		}
	}
	return result, nil
}

func (s *SalaryServiceImpl) GetSalary(ctx context.Context, id string) (salary.SalaryResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	period, err := s.salaryRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return s.toResponseWithName(ctx, companyID, period), nil
}

func (s *SalaryServiceImpl) ListSalaries(ctx context.Context, filter salary.SalaryFilter) ([]salary.SalaryResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	periods, err := s.salaryRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]salary.SalaryResponse, 0, len(periods))
	for _, period := range periods {
		responses = append(responses, s.toResponseWithName(ctx, companyID, period))
	}
	return responses, nil
}

func (s *SalaryServiceImpl) ListPendingApproval(ctx context.Context, req salary.CalculatePeriodRequest) ([]salary.SalaryResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	draft := salary.StatusDraft
	from := req.PeriodStart()
	to := from.AddDate(0, 1, 0)
	periods, err := s.salaryRepo.List(ctx, companyID, salary.SalaryFilter{Status: &draft, From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	responses := make([]salary.SalaryResponse, 0, len(periods))
	for _, period := range periods {
		responses = append(responses, s.toResponseWithName(ctx, companyID, period))
	}
	return responses, nil
}

func (s *SalaryServiceImpl) GetPeriodStats(ctx context.Context, req salary.CalculatePeriodRequest) (salary.PeriodStatsResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return salary.PeriodStatsResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return salary.PeriodStatsResponse{}, err
	}

	from := req.PeriodStart()
	to := from.AddDate(0, 1, 0)
	periods, err := s.salaryRepo.List(ctx, companyID, salary.SalaryFilter{From: &from, To: &to})
	if err != nil {
		return salary.PeriodStatsResponse{}, err
	}

	stats := salary.PeriodStatsResponse{
		PeriodStart: from.Format("2006-01-02"),
		TotalGross:  decimal.Zero,
		TotalTax:    decimal.Zero,
		TotalNet:    decimal.Zero,
	}
	for _, period := range periods {
		stats.EmployeeCount++
		switch period.Status {
		case salary.StatusDraft:
			stats.DraftCount++
		case salary.StatusApproved:
			stats.ApprovedCount++
		case salary.StatusPaid:
			stats.PaidCount++
		case salary.StatusCanceled:
			stats.CanceledCount++
		}
		stats.TotalGross = stats.TotalGross.Add(period.GrossPay())
		stats.TotalTax = stats.TotalTax.Add(period.TaxDeduction)
		stats.TotalNet = stats.TotalNet.Add(period.NetPay)
	}
	return stats, nil
}

func (s *SalaryServiceImpl) toResponseWithName(ctx context.Context, companyID string, period salary.SalaryPeriod) salary.SalaryResponse {
	resp := salary.ToSalaryResponse(period)
	if emp, err := s.employeeRepo.GetByID(ctx, period.EmployeeID, companyID); err == nil {
		resp.EmployeeName = emp.FullName()
	}
	return resp
}
