package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, company_id, employee_id, period_start, period_end,
	total_hours, total_pay, bonus, tax_deduction, net_pay, status, notes, payment_date, created_at, updated_at`

func (r *salaryRepository) Create(ctx context.Context, period salary.SalaryPeriod) (salary.SalaryPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO salary_periods (company_id, employee_id, period_start, period_end,
			total_hours, total_pay, bonus, tax_deduction, net_pay, status, notes, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s
	`, salaryColumns)

	var created salary.SalaryPeriod
	err := q.QueryRow(ctx, query,
		period.CompanyID, period.EmployeeID, period.PeriodStart, period.PeriodEnd,
		period.TotalHours, period.TotalPay, period.Bonus, period.TaxDeduction, period.NetPay,
		period.Status, period.Notes, period.PaymentDate,
	).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.PeriodStart, &created.PeriodEnd,
		&created.TotalHours, &created.TotalPay, &created.Bonus, &created.TaxDeduction, &created.NetPay,
		&created.Status, &created.Notes, &created.PaymentDate, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return salary.SalaryPeriod{}, fmt.Errorf("failed to create salary period: %w", err)
	}

	for _, shiftID := range period.ShiftIDs {
		if err := r.AttachShift(ctx, created.ID, shiftID); err != nil {
			return salary.SalaryPeriod{}, err
		}
	}
	if err := r.replaceDeductions(ctx, created.ID, period.OtherDeductions); err != nil {
		return salary.SalaryPeriod{}, err
	}

	return r.getByIDInternal(ctx, created.ID, created.CompanyID)
}

func (r *salaryRepository) replaceDeductions(ctx context.Context, periodID string, deductions []salary.Deduction) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_deductions WHERE salary_period_id = $1`, periodID); err != nil {
		return fmt.Errorf("failed to clear salary deductions: %w", err)
	}
	for _, d := range deductions {
		_, err := q.Exec(ctx, `
			INSERT INTO salary_deductions (salary_period_id, description, amount)
			VALUES ($1, $2, $3)
		`, periodID, d.Description, d.Amount)
		if err != nil {
			return fmt.Errorf("failed to insert salary deduction: %w", err)
		}
	}
	return nil
}

func (r *salaryRepository) loadChildren(ctx context.Context, period *salary.SalaryPeriod) error {
	q := GetQuerier(ctx, r.db)

	shiftRows, err := q.Query(ctx, `
		SELECT shift_id
		FROM salary_period_shifts
		WHERE salary_period_id = $1
		ORDER BY shift_id
	`, period.ID)
	if err != nil {
		return fmt.Errorf("failed to list period shifts: %w", err)
	}
	defer shiftRows.Close()

	period.ShiftIDs = nil
	for shiftRows.Next() {
		var shiftID string
		if err := shiftRows.Scan(&shiftID); err != nil {
			return fmt.Errorf("failed to scan period shift: %w", err)
		}
		period.ShiftIDs = append(period.ShiftIDs, shiftID)
	}
	if err := shiftRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate period shifts: %w", err)
	}

	deductionRows, err := q.Query(ctx, `
		SELECT id, salary_period_id, description, amount
		FROM salary_deductions
		WHERE salary_period_id = $1
		ORDER BY description
	`, period.ID)
	if err != nil {
		return fmt.Errorf("failed to list salary deductions: %w", err)
	}
	defer deductionRows.Close()

	period.OtherDeductions = nil
	for deductionRows.Next() {
		var d salary.Deduction
		if err := deductionRows.Scan(&d.ID, &d.SalaryPeriodID, &d.Description, &d.Amount); err != nil {
			return fmt.Errorf("failed to scan salary deduction: %w", err)
		}
		period.OtherDeductions = append(period.OtherDeductions, d)
	}
	if err := deductionRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate salary deductions: %w", err)
	}

	return nil
}

func (r *salaryRepository) getByIDInternal(ctx context.Context, id string, companyID string) (salary.SalaryPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_periods
		WHERE id = $1 AND company_id = $2
	`, salaryColumns)

	var p salary.SalaryPeriod
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd,
		&p.TotalHours, &p.TotalPay, &p.Bonus, &p.TaxDeduction, &p.NetPay,
		&p.Status, &p.Notes, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryPeriod{}, salary.ErrSalaryNotFound
		}
		return salary.SalaryPeriod{}, fmt.Errorf("failed to get salary period: %w", err)
	}

	if err := r.loadChildren(ctx, &p); err != nil {
		return salary.SalaryPeriod{}, err
	}
	return p, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string, companyID string) (salary.SalaryPeriod, error) {
	return r.getByIDInternal(ctx, id, companyID)
}

func (r *salaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, companyID string, periodStart time.Time) (salary.SalaryPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_periods
		WHERE employee_id = $1 AND company_id = $2 AND period_start = $3
	`, salaryColumns)

	var p salary.SalaryPeriod
	err := q.QueryRow(ctx, query, employeeID, companyID, periodStart).Scan(
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd,
		&p.TotalHours, &p.TotalPay, &p.Bonus, &p.TaxDeduction, &p.NetPay,
		&p.Status, &p.Notes, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryPeriod{}, salary.ErrSalaryNotFound
		}
		return salary.SalaryPeriod{}, fmt.Errorf("failed to get salary period by employee and month: %w", err)
	}

	if err := r.loadChildren(ctx, &p); err != nil {
		return salary.SalaryPeriod{}, err
	}
	return p, nil
}

func (r *salaryRepository) List(ctx context.Context, companyID string, filter salary.SalaryFilter) ([]salary.SalaryPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_periods
		WHERE company_id = $1
		  AND ($2 = '' OR employee_id = $2::uuid)
		  AND ($3::text IS NULL OR status = $3)
		  AND ($4::timestamptz IS NULL OR period_start >= $4)
		  AND ($5::timestamptz IS NULL OR period_start < $5)
		ORDER BY period_start DESC, employee_id
	`, salaryColumns)

	rows, err := q.Query(ctx, query, companyID, filter.EmployeeID, filter.Status, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary periods: %w", err)
	}
	defer rows.Close()

	var periods []salary.SalaryPeriod
	for rows.Next() {
		var p salary.SalaryPeriod
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd,
			&p.TotalHours, &p.TotalPay, &p.Bonus, &p.TaxDeduction, &p.NetPay,
			&p.Status, &p.Notes, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary periods: %w", err)
	}

	for i := range periods {
		if err := r.loadChildren(ctx, &periods[i]); err != nil {
			return nil, err
		}
	}
	return periods, nil
}

func (r *salaryRepository) Update(ctx context.Context, period salary.SalaryPeriod) (salary.SalaryPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_periods
		SET total_hours = $3, total_pay = $4, bonus = $5, tax_deduction = $6,
			net_pay = $7, status = $8, notes = $9, payment_date = $10, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		period.ID, period.CompanyID, period.TotalHours, period.TotalPay, period.Bonus,
		period.TaxDeduction, period.NetPay, period.Status, period.Notes, period.PaymentDate,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryPeriod{}, salary.ErrSalaryNotFound
		}
		return salary.SalaryPeriod{}, fmt.Errorf("failed to update salary period: %w", err)
	}

	if err := r.replaceDeductions(ctx, period.ID, period.OtherDeductions); err != nil {
		return salary.SalaryPeriod{}, err
	}

	// Full recalculation replaces the shift set wholesale.
	if period.ShiftIDs != nil {
		if _, err := q.Exec(ctx, `DELETE FROM salary_period_shifts WHERE salary_period_id = $1`, period.ID); err != nil {
			return salary.SalaryPeriod{}, fmt.Errorf("failed to clear period shifts: %w", err)
		}
		for _, shiftID := range period.ShiftIDs {
			if err := r.AttachShift(ctx, period.ID, shiftID); err != nil {
				return salary.SalaryPeriod{}, err
			}
		}
	}

	return r.getByIDInternal(ctx, period.ID, period.CompanyID)
}

func (r *salaryRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM salary_periods
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.ErrSalaryNotFound
		}
		return fmt.Errorf("failed to delete salary period: %w", err)
	}

	return nil
}

func (r *salaryRepository) AttachShift(ctx context.Context, periodID string, shiftID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO salary_period_shifts (salary_period_id, shift_id)
		VALUES ($1, $2)
		ON CONFLICT (salary_period_id, shift_id) DO NOTHING
	`, periodID, shiftID)
	if err != nil {
		return fmt.Errorf("failed to attach shift to period: %w", err)
	}
	return nil
}

func (r *salaryRepository) DetachShift(ctx context.Context, periodID string, shiftID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		DELETE FROM salary_period_shifts
		WHERE salary_period_id = $1 AND shift_id = $2
	`, periodID, shiftID)
	if err != nil {
		return fmt.Errorf("failed to detach shift from period: %w", err)
	}
	return nil
}
