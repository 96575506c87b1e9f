package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/shiftpay/payroll-engine-go/internal/domain/shift"
)

// periodLocks serializes aggregate mutations per (company, employee,
// month) so concurrent shift writes cannot produce lost updates.
type periodLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPeriodLocks() *periodLocks {
	return &periodLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *periodLocks) lock(companyID, employeeID string, periodStart time.Time) func() {
	key := companyID + "|" + employeeID + "|" + periodStart.Format("2006-01")

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *SalaryServiceImpl) AddShift(ctx context.Context, companyID string, employeeID string, c salary.ShiftContribution) error {
	periodStart := salary.PeriodStartFor(c.Date)
	unlock := s.locks.lock(companyID, employeeID, periodStart)
	defer unlock()

	return s.addLocked(ctx, companyID, employeeID, periodStart, c)
}

func (s *SalaryServiceImpl) addLocked(ctx context.Context, companyID, employeeID string, periodStart time.Time, c salary.ShiftContribution) error {
	period, err := s.salaryRepo.GetByEmployeePeriod(ctx, employeeID, companyID, periodStart)
	if errors.Is(err, salary.ErrSalaryNotFound) {
		period = salary.SalaryPeriod{
			CompanyID:   companyID,
			EmployeeID:  employeeID,
			PeriodStart: periodStart,
			PeriodEnd:   periodStart.AddDate(0, 1, 0),
			TotalHours:  c.Hours,
			TotalPay:    c.Pay,
			ShiftIDs:    []string{c.ShiftID},
			Status:      salary.StatusDraft,
		}
		s.refreshNetPay(ctx, companyID, employeeID, &period)

		_, err := s.salaryRepo.Create(ctx, period)
		if err != nil {
			return fmt.Errorf("failed to create salary period: %w", err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if period.Status == salary.StatusPaid {
		return shift.ErrShiftPeriodPaid
	}

	period.TotalHours = period.TotalHours.Add(c.Hours)
	period.TotalPay = period.TotalPay.Add(c.Pay)
	period.ShiftIDs = append(period.ShiftIDs, c.ShiftID)
	s.refreshNetPay(ctx, companyID, employeeID, &period)

	if _, err := s.salaryRepo.Update(ctx, period); err != nil {
		return fmt.Errorf("failed to update salary period: %w", err)
	}
	if err := s.salaryRepo.AttachShift(ctx, period.ID, c.ShiftID); err != nil {
		return fmt.Errorf("failed to attach shift to salary period: %w", err)
	}
	return nil
}

func (s *SalaryServiceImpl) RemoveShift(ctx context.Context, companyID string, employeeID string, c salary.ShiftContribution) error {
	periodStart := salary.PeriodStartFor(c.Date)
	unlock := s.locks.lock(companyID, employeeID, periodStart)
	defer unlock()

	return s.removeLocked(ctx, companyID, employeeID, periodStart, c)
}

func (s *SalaryServiceImpl) removeLocked(ctx context.Context, companyID, employeeID string, periodStart time.Time, c salary.ShiftContribution) error {
	period, err := s.salaryRepo.GetByEmployeePeriod(ctx, employeeID, companyID, periodStart)
	if errors.Is(err, salary.ErrSalaryNotFound) {
		// Degrade to a no-op rather than failing the shift mutation.
		slog.Warn("Salary period missing for shift removal",
			"company_id", companyID, "employee_id", employeeID,
			"period_start", periodStart.Format("2006-01-02"), "shift_id", c.ShiftID,
			"error", salary.ErrMissingAggregate)
		return nil
	}
	if err != nil {
		return err
	}
	if period.Status == salary.StatusPaid {
		return shift.ErrShiftPeriodPaid
	}

	period.TotalHours = period.TotalHours.Sub(c.Hours)
	period.TotalPay = period.TotalPay.Sub(c.Pay)
	period.ShiftIDs = removeID(period.ShiftIDs, c.ShiftID)

	// An empty period is deleted rather than kept as a zero record.
	if len(period.ShiftIDs) == 0 {
		if err := s.salaryRepo.Delete(ctx, period.ID, companyID); err != nil {
			return fmt.Errorf("failed to delete empty salary period: %w", err)
		}
		return nil
	}

	s.refreshNetPay(ctx, companyID, employeeID, &period)

	if _, err := s.salaryRepo.Update(ctx, period); err != nil {
		return fmt.Errorf("failed to update salary period: %w", err)
	}
	if err := s.salaryRepo.DetachShift(ctx, period.ID, c.ShiftID); err != nil {
		return fmt.Errorf("failed to detach shift from salary period: %w", err)
	}
	return nil
}

func (s *SalaryServiceImpl) AmendShift(ctx context.Context, companyID string, employeeID string, old salary.ShiftContribution, updated salary.ShiftContribution) error {
	oldStart := salary.PeriodStartFor(old.Date)
	newStart := salary.PeriodStartFor(updated.Date)

	// Same month: apply the delta in place under one lock.
	if oldStart.Equal(newStart) {
		unlock := s.locks.lock(companyID, employeeID, oldStart)
		defer unlock()

		period, err := s.salaryRepo.GetByEmployeePeriod(ctx, employeeID, companyID, oldStart)
		if errors.Is(err, salary.ErrSalaryNotFound) {
			// Degrade to a no-op rather than failing the shift mutation.
			slog.Warn("Salary period missing for shift amendment",
				"company_id", companyID, "employee_id", employeeID,
				"period_start", oldStart.Format("2006-01-02"), "shift_id", updated.ShiftID,
				"error", salary.ErrMissingAggregate)
			return nil
		}
		if err != nil {
			return err
		}
		if period.Status == salary.StatusPaid {
			return shift.ErrShiftPeriodPaid
		}

		period.TotalHours = period.TotalHours.Sub(old.Hours).Add(updated.Hours)
		period.TotalPay = period.TotalPay.Sub(old.Pay).Add(updated.Pay)
		s.refreshNetPay(ctx, companyID, employeeID, &period)

		if _, err := s.salaryRepo.Update(ctx, period); err != nil {
			return fmt.Errorf("failed to update salary period: %w", err)
		}
		return nil
	}

	// Cross-month move: the contribution leaves one period and lands in
	// another, creating it if needed. Locks are taken sequentially, never
	// nested.
	unlockOld := s.locks.lock(companyID, employeeID, oldStart)
	err := s.removeLocked(ctx, companyID, employeeID, oldStart, old)
	unlockOld()
	if err != nil {
		return err
	}

	unlockNew := s.locks.lock(companyID, employeeID, newStart)
	defer unlockNew()
	return s.addLocked(ctx, companyID, employeeID, newStart, updated)
}

// refreshNetPay recomputes tax and net pay for a period. A missing tax
// configuration degrades to carrying the existing deductions forward.
func (s *SalaryServiceImpl) refreshNetPay(ctx context.Context, companyID, employeeID string, period *salary.SalaryPeriod) {
	config, err := s.resolveTaxConfig(ctx, companyID, employeeID)
	if err != nil {
		slog.Debug("Tax configuration unresolved, keeping existing deductions",
			"company_id", companyID, "employee_id", employeeID, "error", err)
		period.NetPay = netPayOf(period.GrossPay(), period.TaxDeduction, period.DeductionsTotal())
		return
	}

	result := computeTax(period.GrossPay(), config)
	period.TaxDeduction = result.TaxDeduction
	period.OtherDeductions = result.OtherDeductions
	period.NetPay = result.NetPay
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
