package shift

import (
	"time"

	"github.com/shiftpay/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateShiftRequest struct {
	EmployeeID  string           `json:"employee_id,omitempty"`
	StartTime   string           `json:"start_time"`
	EndTime     *string          `json:"end_time,omitempty"`
	HoursWorked *decimal.Decimal `json:"hours_worked,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDateTime(r.StartTime)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid ISO8601 timestamp"})
	}
	if r.EndTime != nil {
		end, ok := validator.IsValidDateTime(*r.EndTime)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid ISO8601 timestamp"})
		} else if !end.After(start) && !end.Equal(start) {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must not be before start_time"})
		}
	}
	if r.HoursWorked != nil && r.HoursWorked.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hours_worked", Message: "must be non-negative"})
	}
	if r.EndTime == nil && r.HoursWorked == nil {
		errs = append(errs, validator.ValidationError{Field: "hours_worked", Message: "is required when end_time is not set"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Times returns the parsed start and optional end time. Validate must have
// passed first.
func (r *CreateShiftRequest) Times() (time.Time, *time.Time) {
	start, _ := validator.IsValidDateTime(r.StartTime)
	if r.EndTime == nil {
		return start, nil
	}
	end, _ := validator.IsValidDateTime(*r.EndTime)
	return start, &end
}

type UpdateShiftRequest struct {
	ID          string
	StartTime   *string          `json:"start_time,omitempty"`
	EndTime     *string          `json:"end_time,omitempty"`
	HoursWorked *decimal.Decimal `json:"hours_worked,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartTime != nil {
		if _, ok := validator.IsValidDateTime(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid ISO8601 timestamp"})
		}
	}
	if r.EndTime != nil {
		if _, ok := validator.IsValidDateTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid ISO8601 timestamp"})
		}
	}
	if r.HoursWorked != nil && r.HoursWorked.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hours_worked", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
}

type BreakdownSegmentResponse struct {
	Kind       string          `json:"kind"`
	Hours      decimal.Decimal `json:"hours"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Pay        decimal.Decimal `json:"pay"`
}

type ShiftResponse struct {
	ID           string                     `json:"id"`
	CompanyID    string                     `json:"company_id"`
	EmployeeID   string                     `json:"employee_id"`
	ShiftDate    string                     `json:"shift_date"`
	StartTime    time.Time                  `json:"start_time"`
	EndTime      *time.Time                 `json:"end_time,omitempty"`
	HoursWorked  decimal.Decimal            `json:"hours_worked"`
	HourlySalary decimal.Decimal            `json:"hourly_salary"`
	DayType      DayType                    `json:"day_type"`
	ShiftType    ShiftType                  `json:"shift_type"`
	Breakdown    []BreakdownSegmentResponse `json:"breakdown"`
	TotalPay     decimal.Decimal            `json:"total_pay"`
	Notes        *string                    `json:"notes,omitempty"`
}

func ToShiftResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		EmployeeID:   s.EmployeeID,
		ShiftDate:    s.ShiftDate.Format("2006-01-02"),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		HoursWorked:  s.HoursWorked,
		HourlySalary: s.HourlySalary,
		DayType:      s.DayType,
		ShiftType:    s.ShiftType,
		TotalPay:     s.TotalPay,
		Notes:        s.Notes,
		Breakdown:    make([]BreakdownSegmentResponse, 0, len(s.Breakdown)),
	}
	for _, seg := range s.Breakdown {
		resp.Breakdown = append(resp.Breakdown, BreakdownSegmentResponse{
			Kind:       string(seg.Kind),
			Hours:      seg.Hours,
			Multiplier: seg.Multiplier,
			Pay:        seg.Pay,
		})
	}
	return resp
}
