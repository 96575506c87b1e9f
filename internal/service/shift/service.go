package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/employee"
	"github.com/shiftpay/payroll-engine-go/internal/domain/payrate"
	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/shiftpay/payroll-engine-go/internal/domain/shift"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/holiday"
	"github.com/shiftpay/payroll-engine-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type ShiftServiceImpl struct {
	db           *database.DB
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	rateRepo     payrate.RateTierRepository
	aggregator   salary.Aggregator
	holidays     holiday.Lookup
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	rateRepo payrate.RateTierRepository,
	aggregator salary.Aggregator,
	holidays holiday.Lookup,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:           db,
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		rateRepo:     rateRepo,
		aggregator:   aggregator,
		holidays:     holidays,
	}
}

// Helper to get company_id and employee_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, _ = claims["employee_id"].(string)

	return companyID, employeeID, nil
}

func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	companyID, claimEmployeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = claimEmployeeID
	}
	if employeeID == "" {
		return shift.ShiftResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if emp.HourlySalary == nil {
		return shift.ShiftResponse{}, employee.ErrEmployeeNoHourlyPay
	}

	start, end := req.Times()

	hours, err := EffectiveHours(start, end, req.HoursWorked)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if err := s.checkOverlap(ctx, employeeID, companyID, start, end, ""); err != nil {
		return shift.ShiftResponse{}, err
	}

	priced, err := s.price(ctx, companyID, start, end, hours, *emp.HourlySalary)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	newShift := shift.Shift{
		CompanyID:    companyID,
		EmployeeID:   employeeID,
		ShiftDate:    shiftDateOf(start),
		StartTime:    start,
		EndTime:      end,
		HoursWorked:  hours,
		HourlySalary: *emp.HourlySalary,
		DayType:      priced.DayType,
		ShiftType:    priced.ShiftType,
		Breakdown:    priced.Segments,
		TotalPay:     priced.TotalPay,
		Notes:        req.Notes,
	}

	var created shift.Shift
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.shiftRepo.Create(txCtx, newShift)
		if err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}

		return s.aggregator.AddShift(txCtx, companyID, employeeID, contributionOf(created))
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.ToShiftResponse(created), nil
}

func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	found, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToShiftResponse(found), nil
}

func (s *ShiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) ([]shift.ShiftResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, item := range shifts {
		responses = append(responses, shift.ToShiftResponse(item))
	}
	return responses, nil
}

func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	oldContribution := contributionOf(existing)

	updated := existing
	if req.StartTime != nil {
		start, _ := time.Parse(time.RFC3339, *req.StartTime)
		updated.StartTime = start
		updated.ShiftDate = shiftDateOf(start)
	}
	if req.EndTime != nil {
		end, _ := time.Parse(time.RFC3339, *req.EndTime)
		updated.EndTime = &end
	}
	if req.Notes != nil {
		updated.Notes = req.Notes
	}

	// Nothing time-related changed: keep the recorded hours, which may
	// have been an explicit override at creation.
	hours := existing.HoursWorked
	if req.StartTime != nil || req.EndTime != nil || req.HoursWorked != nil {
		hours, err = EffectiveHours(updated.StartTime, updated.EndTime, req.HoursWorked)
		if err != nil {
			return shift.ShiftResponse{}, err
		}
	}
	updated.HoursWorked = hours

	if err := s.checkOverlap(ctx, existing.EmployeeID, companyID, updated.StartTime, updated.EndTime, existing.ID); err != nil {
		return shift.ShiftResponse{}, err
	}

	priced, err := s.price(ctx, companyID, updated.StartTime, updated.EndTime, hours, existing.HourlySalary)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	updated.DayType = priced.DayType
	updated.ShiftType = priced.ShiftType
	updated.Breakdown = priced.Segments
	updated.TotalPay = priced.TotalPay

	var saved shift.Shift
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		saved, err = s.shiftRepo.Update(txCtx, updated)
		if err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}

		return s.aggregator.AmendShift(txCtx, companyID, existing.EmployeeID, oldContribution, contributionOf(saved))
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.ToShiftResponse(saved), nil
}

func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.shiftRepo.Delete(txCtx, id, companyID); err != nil {
			return fmt.Errorf("failed to delete shift: %w", err)
		}

		return s.aggregator.RemoveShift(txCtx, companyID, existing.EmployeeID, contributionOf(existing))
	})
}

// checkOverlap rejects a shift whose interval intersects another shift of
// the same employee. Runs before any aggregate mutation.
func (s *ShiftServiceImpl) checkOverlap(ctx context.Context, employeeID, companyID string, start time.Time, end *time.Time, excludeID string) error {
	overlapping, err := s.shiftRepo.FindOverlapping(ctx, employeeID, companyID, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check shift overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return shift.ErrOverlapConflict
	}
	return nil
}

// price resolves the rate table and calendar facts and runs the breakdown
// calculator.
func (s *ShiftServiceImpl) price(ctx context.Context, companyID string, start time.Time, end *time.Time, hours, hourlySalary decimal.Decimal) (BreakdownResult, error) {
	companyTiers, err := s.rateRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return BreakdownResult{}, fmt.Errorf("failed to load rate tiers: %w", err)
	}
	tiers := payrate.ResolveTiers(companyTiers)

	date := shiftDateOf(start)
	isHoliday, err := s.holidays.IsHoliday(ctx, date)
	if err != nil {
		slog.Warn("Holiday lookup error, treating date as non-holiday", "date", date.Format("2006-01-02"), "error", err)
		isHoliday = false
	}

	facts := CalendarFacts{
		IsHoliday: isHoliday,
		IsRestDay: date.Weekday() == time.Saturday,
	}

	return ComputeBreakdown(start, end, hours, hourlySalary, tiers, facts), nil
}

func shiftDateOf(start time.Time) time.Time {
	u := start.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func contributionOf(s shift.Shift) salary.ShiftContribution {
	return salary.ShiftContribution{
		ShiftID: s.ID,
		Date:    s.ShiftDate,
		Hours:   s.HoursWorked,
		Pay:     s.TotalPay,
	}
}
