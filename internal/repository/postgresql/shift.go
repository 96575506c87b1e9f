package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/shift"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `id, company_id, employee_id, shift_date, start_time, end_time,
	hours_worked, hourly_salary, day_type, shift_type, total_pay, notes, created_at, updated_at`

func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO shifts (company_id, employee_id, shift_date, start_time, end_time,
			hours_worked, hourly_salary, day_type, shift_type, total_pay, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`, shiftColumns)

	var created shift.Shift
	err := q.QueryRow(ctx, query,
		s.CompanyID, s.EmployeeID, s.ShiftDate, s.StartTime, s.EndTime,
		s.HoursWorked, s.HourlySalary, s.DayType, s.ShiftType, s.TotalPay, s.Notes,
	).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.ShiftDate, &created.StartTime, &created.EndTime,
		&created.HoursWorked, &created.HourlySalary, &created.DayType, &created.ShiftType, &created.TotalPay, &created.Notes,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	if err := r.replaceBreakdown(ctx, created.ID, s.Breakdown); err != nil {
		return shift.Shift{}, err
	}
	if err := r.loadBreakdown(ctx, &created); err != nil {
		return shift.Shift{}, err
	}

	return created, nil
}

func (r *shiftRepository) replaceBreakdown(ctx context.Context, shiftID string, segments []shift.BreakdownSegment) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM shift_breakdowns WHERE shift_id = $1`, shiftID); err != nil {
		return fmt.Errorf("failed to clear shift breakdown: %w", err)
	}

	for i, seg := range segments {
		_, err := q.Exec(ctx, `
			INSERT INTO shift_breakdowns (shift_id, kind, hours, multiplier, pay, rate_tier_id, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, shiftID, seg.Kind, seg.Hours, seg.Multiplier, seg.Pay, seg.RateTierID, i)
		if err != nil {
			return fmt.Errorf("failed to insert breakdown segment: %w", err)
		}
	}
	return nil
}

func (r *shiftRepository) loadBreakdown(ctx context.Context, s *shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, shift_id, kind, hours, multiplier, pay, rate_tier_id, position
		FROM shift_breakdowns
		WHERE shift_id = $1
		ORDER BY position
	`, s.ID)
	if err != nil {
		return fmt.Errorf("failed to list shift breakdown: %w", err)
	}
	defer rows.Close()

	s.Breakdown = nil
	for rows.Next() {
		var seg shift.BreakdownSegment
		if err := rows.Scan(&seg.ID, &seg.ShiftID, &seg.Kind, &seg.Hours, &seg.Multiplier, &seg.Pay, &seg.RateTierID, &seg.Position); err != nil {
			return fmt.Errorf("failed to scan breakdown segment: %w", err)
		}
		s.Breakdown = append(s.Breakdown, seg)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shift breakdown: %w", err)
	}
	return nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts
		WHERE id = $1 AND company_id = $2
	`, shiftColumns)

	var s shift.Shift
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.ShiftDate, &s.StartTime, &s.EndTime,
		&s.HoursWorked, &s.HourlySalary, &s.DayType, &s.ShiftType, &s.TotalPay, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	if err := r.loadBreakdown(ctx, &s); err != nil {
		return shift.Shift{}, err
	}
	return s, nil
}

func (r *shiftRepository) List(ctx context.Context, companyID string, filter shift.ShiftFilter) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts
		WHERE company_id = $1
		  AND ($2 = '' OR employee_id = $2::uuid)
		  AND ($3::timestamptz IS NULL OR start_time >= $3)
		  AND ($4::timestamptz IS NULL OR start_time < $4)
		ORDER BY start_time DESC
	`, shiftColumns)

	rows, err := q.Query(ctx, query, companyID, filter.EmployeeID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	shifts, err := scanShifts(rows)
	if err != nil {
		return nil, err
	}

	for i := range shifts {
		if err := r.loadBreakdown(ctx, &shifts[i]); err != nil {
			return nil, err
		}
	}
	return shifts, nil
}

func (r *shiftRepository) ListByEmployeePeriod(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts
		WHERE company_id = $1 AND employee_id = $2
		  AND shift_date >= $3 AND shift_date < $4
		ORDER BY start_time
	`, shiftColumns)

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for period: %w", err)
	}
	defer rows.Close()

	shifts, err := scanShifts(rows)
	if err != nil {
		return nil, err
	}

	for i := range shifts {
		if err := r.loadBreakdown(ctx, &shifts[i]); err != nil {
			return nil, err
		}
	}
	return shifts, nil
}

func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE shifts
		SET shift_date = $3, start_time = $4, end_time = $5, hours_worked = $6,
			day_type = $7, shift_type = $8, total_pay = $9, notes = $10, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING %s
	`, shiftColumns)

	var updated shift.Shift
	err := q.QueryRow(ctx, query,
		s.ID, s.CompanyID, s.ShiftDate, s.StartTime, s.EndTime, s.HoursWorked,
		s.DayType, s.ShiftType, s.TotalPay, s.Notes,
	).Scan(
		&updated.ID, &updated.CompanyID, &updated.EmployeeID, &updated.ShiftDate, &updated.StartTime, &updated.EndTime,
		&updated.HoursWorked, &updated.HourlySalary, &updated.DayType, &updated.ShiftType, &updated.TotalPay, &updated.Notes,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	if err := r.replaceBreakdown(ctx, updated.ID, s.Breakdown); err != nil {
		return shift.Shift{}, err
	}
	if err := r.loadBreakdown(ctx, &updated); err != nil {
		return shift.Shift{}, err
	}
	return updated, nil
}

func (r *shiftRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shifts
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	return nil
}

func (r *shiftRepository) FindOverlapping(ctx context.Context, employeeID string, companyID string, start time.Time, end *time.Time, excludeID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	// Two intervals overlap when each starts before the other ends.
	// NULL end times are open shifts and extend indefinitely.
	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts
		WHERE company_id = $1 AND employee_id = $2
		  AND ($5 = '' OR id <> $5::uuid)
		  AND ($4::timestamptz IS NULL OR start_time < $4)
		  AND (end_time IS NULL OR end_time > $3)
	`, shiftColumns)

	rows, err := q.Query(ctx, query, companyID, employeeID, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping shifts: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

func scanShifts(rows pgx.Rows) ([]shift.Shift, error) {
	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.EmployeeID, &s.ShiftDate, &s.StartTime, &s.EndTime,
			&s.HoursWorked, &s.HourlySalary, &s.DayType, &s.ShiftType, &s.TotalPay, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}
