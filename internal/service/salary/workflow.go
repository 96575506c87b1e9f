package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
	"github.com/shiftpay/payroll-engine-go/internal/domain/finance"
	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/validator"
)

func (s *SalaryServiceImpl) ApproveSalary(ctx context.Context, id string, req salary.ApproveSalaryRequest) (salary.SalaryResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	period, err := s.salaryRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	approved, err := s.approvePeriod(ctx, period, req.Notes)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return s.toResponseWithName(ctx, companyID, approved), nil
}

// approvePeriod moves a period to Approved and emits its pending ledger
// entry. Approving an already-Approved period is a retry: the upsert is
// keyed on the period id, so it lands on the same ledger row.
func (s *SalaryServiceImpl) approvePeriod(ctx context.Context, period salary.SalaryPeriod, notes *string) (salary.SalaryPeriod, error) {
	if !period.Status.CanTransitionTo(salary.StatusApproved) {
		return salary.SalaryPeriod{}, salary.ErrInvalidStateTransition
	}

	settings := s.settingsOrDefault(ctx, period.CompanyID)
	dueDate := dueDateFor(period, settings)

	period.Status = salary.StatusApproved
	if notes != nil {
		period.Notes = appendNote(period.Notes, *notes)
	}

	var approved salary.SalaryPeriod
	err := s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		approved, err = s.salaryRepo.Update(txCtx, period)
		if err != nil {
			return fmt.Errorf("failed to approve salary period: %w", err)
		}

		entry := s.ledgerEntryFor(ctx, approved, finance.EntryStatusPending, dueDate)
		if _, err := s.ledger.Upsert(txCtx, entry); err != nil {
			return fmt.Errorf("failed to upsert ledger entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return salary.SalaryPeriod{}, err
	}
	return approved, nil
}

func (s *SalaryServiceImpl) RejectSalary(ctx context.Context, id string, req salary.RejectSalaryRequest) (salary.SalaryResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	period, err := s.salaryRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	if !period.Status.CanTransitionTo(salary.StatusCanceled) {
		return salary.SalaryResponse{}, salary.ErrInvalidStateTransition
	}

	period.Status = salary.StatusCanceled
	period.Notes = appendNote(period.Notes, "Rejected: "+req.Reason)

	// Rejection has no ledger effect.
	updated, err := s.salaryRepo.Update(ctx, period)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return s.toResponseWithName(ctx, companyID, updated), nil
}

func (s *SalaryServiceImpl) MarkSalariesPaid(ctx context.Context, req salary.MarkPaidRequest) (salary.MarkPaidResult, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return salary.MarkPaidResult{}, err
	}
	if len(req.SalaryIDs) == 0 {
		return salary.MarkPaidResult{}, salary.ErrNoSalariesSelected
	}
	if err := req.Validate(); err != nil {
		return salary.MarkPaidResult{}, err
	}

	var explicitDate *time.Time
	if req.PaymentDate != nil {
		parsed, _ := validator.IsValidDate(*req.PaymentDate)
		explicitDate = &parsed
	}

	periods := make([]salary.SalaryPeriod, 0, len(req.SalaryIDs))
	for _, id := range req.SalaryIDs {
		period, err := s.salaryRepo.GetByID(ctx, id, companyID)
		if err != nil {
			return salary.MarkPaidResult{}, err
		}
		if !period.Status.CanTransitionTo(salary.StatusPaid) {
			return salary.MarkPaidResult{}, salary.ErrInvalidStateTransition
		}
		periods = append(periods, period)
	}

	return s.payPeriods(ctx, periods, explicitDate, paymentMethodOf(req.PaymentMethod), req.BankAccount)
}

func paymentMethodOf(method *string) string {
	if method != nil && *method != "" {
		return *method
	}
	return "Bank Transfer"
}

// payPeriods marks a batch of approved periods paid and completes their
// ledger entries, all or nothing. Without an explicit payment date each
// period falls due on its settings-derived date, same as approval.
func (s *SalaryServiceImpl) payPeriods(ctx context.Context, periods []salary.SalaryPeriod, explicitDate *time.Time, paymentMethod string, bankAccount *string) (salary.MarkPaidResult, error) {
	if len(periods) == 0 {
		return salary.MarkPaidResult{LedgerEntryIDs: []string{}}, nil
	}

	result := salary.MarkPaidResult{LedgerEntryIDs: []string{}}
	err := s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, period := range periods {
			paymentDate := explicitDate
			if paymentDate == nil {
				due := dueDateFor(period, s.settingsOrDefault(ctx, period.CompanyID))
				paymentDate = &due
			}

			period.Status = salary.StatusPaid
			period.PaymentDate = paymentDate
			period.Notes = appendNote(period.Notes,
				fmt.Sprintf("Paid %s via %s", paymentDate.Format("2006-01-02"), paymentMethod))

			paid, err := s.salaryRepo.Update(txCtx, period)
			if err != nil {
				return fmt.Errorf("failed to mark salary period paid: %w", err)
			}

			entry := s.ledgerEntryFor(ctx, paid, finance.EntryStatusCompleted, *paymentDate)
			entry.TransactionDate = *paymentDate
			entry.BankAccount = bankAccount
			entry.Description += ", paid via " + paymentMethod

			saved, err := s.ledger.Upsert(txCtx, entry)
			if err != nil {
				return fmt.Errorf("failed to upsert ledger entry: %w", err)
			}

			result.PaidCount++
			result.LedgerEntryIDs = append(result.LedgerEntryIDs, saved.ID)
		}
		return nil
	})
	if err != nil {
		return salary.MarkPaidResult{}, err
	}
	return result, nil
}

func (s *SalaryServiceImpl) ApproveAllForCompany(ctx context.Context, companyID string, req salary.CalculatePeriodRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	draft := salary.StatusDraft
	from := req.PeriodStart()
	to := from.AddDate(0, 1, 0)
	periods, err := s.salaryRepo.List(ctx, companyID, salary.SalaryFilter{Status: &draft, From: &from, To: &to})
	if err != nil {
		return 0, err
	}

	approved := 0
	for _, period := range periods {
		if _, err := s.approvePeriod(ctx, period, nil); err != nil {
			if errors.Is(err, salary.ErrInvalidStateTransition) {
				continue
			}
			return approved, err
		}
		approved++
	}
	return approved, nil
}

func (s *SalaryServiceImpl) MarkPaidForCompany(ctx context.Context, companyID string, req salary.CalculatePeriodRequest) (salary.MarkPaidResult, error) {
	if err := req.Validate(); err != nil {
		return salary.MarkPaidResult{}, err
	}

	approvedStatus := salary.StatusApproved
	from := req.PeriodStart()
	to := from.AddDate(0, 1, 0)
	periods, err := s.salaryRepo.List(ctx, companyID, salary.SalaryFilter{Status: &approvedStatus, From: &from, To: &to})
	if err != nil {
		return salary.MarkPaidResult{}, err
	}

	return s.payPeriods(ctx, periods, nil, "Bank Transfer", nil)
}

func (s *SalaryServiceImpl) settingsOrDefault(ctx context.Context, companyID string) automation.Settings {
	settings, err := s.settingsRepo.GetSettings(ctx, companyID)
	if err != nil {
		return automation.DefaultSettings(companyID)
	}
	return settings
}

// dueDateFor places the configured payment day in the month following the
// period, clamping to the month's last day.
func dueDateFor(period salary.SalaryPeriod, settings automation.Settings) time.Time {
	year, month := period.PeriodEnd.Year(), period.PeriodEnd.Month()

	day := settings.PaymentDate
	lastDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (s *SalaryServiceImpl) ledgerEntryFor(ctx context.Context, period salary.SalaryPeriod, status finance.EntryStatus, dueDate time.Time) finance.LedgerEntry {
	now := time.Now().UTC()

	currency := "USD"
	if config, err := s.resolveTaxConfig(ctx, period.CompanyID, period.EmployeeID); err == nil && config.Currency != "" {
		currency = config.Currency
	}

	return finance.LedgerEntry{
		CompanyID:       period.CompanyID,
		TransactionDate: now,
		TransactionType: "Expense",
		Category:        "Payroll",
		Amount:          period.NetPay,
		Currency:        currency,
		Description:     ledgerDescription(period),
		Status:          status,
		PartyID:         period.EmployeeID,
		PaymentTerms:    finance.ClassifyPaymentTerms(dueDate, now),
		DueDate:         dueDate,
		ReferenceKey:    period.ID,
	}
}

func ledgerDescription(period salary.SalaryPeriod) string {
	return fmt.Sprintf("Salary %s: gross %s, bonus %s, tax %s, deductions %s, net %s",
		period.PeriodStart.Format("2006-01"),
		period.TotalPay.StringFixed(2),
		period.Bonus.StringFixed(2),
		period.TaxDeduction.StringFixed(2),
		period.DeductionsTotal().StringFixed(2),
		period.NetPay.StringFixed(2),
	)
}

func appendNote(notes *string, addition string) *string {
	if notes == nil || *notes == "" {
		return &addition
	}
	combined := *notes + "\n" + addition

	return &combined
}
