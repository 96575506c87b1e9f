package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
)

type automationRepository struct {
	db *database.DB
}

func NewAutomationRepository(db *database.DB) automation.SettingsRepository {
	return &automationRepository{db: db}
}

const automationColumns = `id, company_id, enabled, calculation_date, approval_date, payment_date,
	auto_approve, auto_send_payslips, notification_days, default_tax_config_id, created_at, updated_at`

func (r *automationRepository) GetSettings(ctx context.Context, companyID string) (automation.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_automation_settings
		WHERE company_id = $1
	`, automationColumns)

	var s automation.Settings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Enabled, &s.CalculationDate, &s.ApprovalDate, &s.PaymentDate,
		&s.AutoApprove, &s.AutoSendPayslips, &s.NotificationDays, &s.DefaultTaxConfigID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return automation.Settings{}, automation.ErrSettingsNotFound
		}
		return automation.Settings{}, fmt.Errorf("failed to get automation settings: %w", err)
	}

	return s, nil
}

func (r *automationRepository) UpsertSettings(ctx context.Context, settings automation.Settings) (automation.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO payroll_automation_settings (company_id, enabled, calculation_date, approval_date,
			payment_date, auto_approve, auto_send_payslips, notification_days, default_tax_config_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			calculation_date = EXCLUDED.calculation_date,
			approval_date = EXCLUDED.approval_date,
			payment_date = EXCLUDED.payment_date,
			auto_approve = EXCLUDED.auto_approve,
			auto_send_payslips = EXCLUDED.auto_send_payslips,
			notification_days = EXCLUDED.notification_days,
			default_tax_config_id = EXCLUDED.default_tax_config_id,
			updated_at = NOW()
		RETURNING %s
	`, automationColumns)

	var s automation.Settings
	err := q.QueryRow(ctx, query,
		settings.CompanyID, settings.Enabled, settings.CalculationDate, settings.ApprovalDate,
		settings.PaymentDate, settings.AutoApprove, settings.AutoSendPayslips,
		settings.NotificationDays, settings.DefaultTaxConfigID,
	).Scan(
		&s.ID, &s.CompanyID, &s.Enabled, &s.CalculationDate, &s.ApprovalDate, &s.PaymentDate,
		&s.AutoApprove, &s.AutoSendPayslips, &s.NotificationDays, &s.DefaultTaxConfigID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return automation.Settings{}, fmt.Errorf("failed to upsert automation settings: %w", err)
	}

	return s, nil
}

func (r *automationRepository) ListEnabled(ctx context.Context) ([]automation.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_automation_settings
		WHERE enabled = TRUE
		ORDER BY company_id
	`, automationColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list automation settings: %w", err)
	}
	defer rows.Close()

	var list []automation.Settings
	for rows.Next() {
		var s automation.Settings
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.Enabled, &s.CalculationDate, &s.ApprovalDate, &s.PaymentDate,
			&s.AutoApprove, &s.AutoSendPayslips, &s.NotificationDays, &s.DefaultTaxConfigID,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan automation settings: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate automation settings: %w", err)
	}

	return list, nil
}
