package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
)

type AutomationServiceImpl struct {
	db            *database.DB
	settingsRepo  automation.SettingsRepository
	salaryService salary.SalaryService
}

func NewAutomationService(
	db *database.DB,
	settingsRepo automation.SettingsRepository,
	salaryService salary.SalaryService,
) automation.AutomationService {
	return &AutomationServiceImpl{
		db:            db,
		settingsRepo:  settingsRepo,
		salaryService: salaryService,
	}
}

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

func (s *AutomationServiceImpl) GetSettings(ctx context.Context) (automation.SettingsResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return automation.SettingsResponse{}, err
	}

	settings, err := s.settingsRepo.GetSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, automation.ErrSettingsNotFound) {
			return automation.ToSettingsResponse(automation.DefaultSettings(companyID)), nil
		}
		return automation.SettingsResponse{}, err
	}
	return automation.ToSettingsResponse(settings), nil
}

func (s *AutomationServiceImpl) UpdateSettings(ctx context.Context, req automation.UpdateSettingsRequest) (automation.SettingsResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return automation.SettingsResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return automation.SettingsResponse{}, err
	}

	settings, err := s.settingsRepo.GetSettings(ctx, companyID)
	if err != nil {
		if !errors.Is(err, automation.ErrSettingsNotFound) {
			return automation.SettingsResponse{}, err
		}
		settings = automation.DefaultSettings(companyID)
	}

	if req.Enabled != nil {
		settings.Enabled = *req.Enabled
	}
	if req.CalculationDate != nil {
		settings.CalculationDate = *req.CalculationDate
	}
	if req.ApprovalDate != nil {
		settings.ApprovalDate = *req.ApprovalDate
	}
	if req.PaymentDate != nil {
		settings.PaymentDate = *req.PaymentDate
	}
	if req.AutoApprove != nil {
		settings.AutoApprove = *req.AutoApprove
	}
	if req.AutoSendPayslips != nil {
		settings.AutoSendPayslips = *req.AutoSendPayslips
	}
	if req.NotificationDays != nil {
		settings.NotificationDays = *req.NotificationDays
	}
	if req.DefaultTaxConfigID != nil {
		settings.DefaultTaxConfigID = req.DefaultTaxConfigID
	}

	saved, err := s.settingsRepo.UpsertSettings(ctx, settings)
	if err != nil {
		return automation.SettingsResponse{}, err
	}
	return automation.ToSettingsResponse(saved), nil
}

// RunSweep runs the payroll stages whose configured day of month has
// arrived, for every automation-enabled company. Stages for one company
// fail independently.
func (s *AutomationServiceImpl) RunSweep(ctx context.Context) error {
	return s.sweep(ctx, time.Now().UTC())
}

func (s *AutomationServiceImpl) sweep(ctx context.Context, today time.Time) error {
	enabled, err := s.settingsRepo.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to list automation-enabled companies: %w", err)
	}

	currentMonth := salary.CalculatePeriodRequest{Year: today.Year(), Month: int(today.Month())}
	// AddDate on the 29th-31st normalizes into the current month, so step
	// back from the first of the month instead.
	prev := salary.PeriodStartFor(today).AddDate(0, -1, 0)
	previousMonth := salary.CalculatePeriodRequest{Year: prev.Year(), Month: int(prev.Month())}

	for _, settings := range enabled {
		log := slog.With("company_id", settings.CompanyID)

		if matchesDay(today, settings.CalculationDate) {
			result, err := s.salaryService.CalculateForCompany(ctx, settings.CompanyID, currentMonth)
			if err != nil {
				log.Error("Payroll calculation sweep failed", "error", err)
			} else {
				log.Info("Payroll calculation sweep completed",
					"calculated", result.CalculatedCount, "errors", len(result.Errors))
			}
		}

		if settings.AutoApprove && matchesDay(today, settings.ApprovalDate) {
			approved, err := s.salaryService.ApproveAllForCompany(ctx, settings.CompanyID, currentMonth)
			if err != nil {
				log.Error("Payroll approval sweep failed", "error", err)
			} else {
				log.Info("Payroll approval sweep completed", "approved", approved)
			}
		}

		// Payment day pays the previous month, whose due date falls in
		// the current one.
		if matchesDay(today, settings.PaymentDate) {
			result, err := s.salaryService.MarkPaidForCompany(ctx, settings.CompanyID, previousMonth)
			if err != nil {
				log.Error("Payroll payment sweep failed", "error", err)
			} else {
				log.Info("Payroll payment sweep completed", "paid", result.PaidCount)
			}
		}
	}
	return nil
}

// matchesDay clamps a configured day of month to the month's last day, so
// day 31 still fires in February.
func matchesDay(today time.Time, configured int) bool {
	lastDay := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
	day := configured
	if day > lastDay {
		day = lastDay
	}
	return today.Day() == day
}
