package salary

import (
	"time"

	"github.com/shiftpay/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SalaryFilter struct {
	EmployeeID string
	Status     *Status
	From       *time.Time
	To         *time.Time
}

type CalculatePeriodRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *CalculatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PeriodStart returns the first instant of the requested month in UTC.
func (r *CalculatePeriodRequest) PeriodStart() time.Time {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
}

type BatchCalculateError struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Error        string `json:"error"`
}

type BatchCalculateResult struct {
	CalculatedCount int                   `json:"calculated_count"`
	Errors          []BatchCalculateError `json:"errors"`
}

type ApproveSalaryRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type RejectSalaryRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectSalaryRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "is required"}}
	}
	return nil
}

type MarkPaidRequest struct {
	SalaryIDs     []string `json:"salary_ids"`
	PaymentDate   *string  `json:"payment_date,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	BankAccount   *string  `json:"bank_account,omitempty"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidResult struct {
	PaidCount      int      `json:"paid_count"`
	LedgerEntryIDs []string `json:"ledger_entry_ids"`
}

type DeductionResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type SalaryResponse struct {
	ID              string              `json:"id"`
	CompanyID       string              `json:"company_id"`
	EmployeeID      string              `json:"employee_id"`
	EmployeeName    string              `json:"employee_name,omitempty"`
	PeriodStart     string              `json:"period_start"`
	PeriodEnd       string              `json:"period_end"`
	TotalHours      decimal.Decimal     `json:"total_hours"`
	TotalPay        decimal.Decimal     `json:"total_pay"`
	Bonus           decimal.Decimal     `json:"bonus"`
	TaxDeduction    decimal.Decimal     `json:"tax_deduction"`
	OtherDeductions []DeductionResponse `json:"other_deductions"`
	NetPay          decimal.Decimal     `json:"net_pay"`
	ShiftCount      int                 `json:"shift_count"`
	Status          Status              `json:"status"`
	Notes           *string             `json:"notes,omitempty"`
	PaymentDate     *string             `json:"payment_date,omitempty"`
}

func ToSalaryResponse(p SalaryPeriod) SalaryResponse {
	resp := SalaryResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		EmployeeID:      p.EmployeeID,
		PeriodStart:     p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       p.PeriodEnd.Format("2006-01-02"),
		TotalHours:      p.TotalHours,
		TotalPay:        p.TotalPay,
		Bonus:           p.Bonus,
		TaxDeduction:    p.TaxDeduction,
		NetPay:          p.NetPay,
		ShiftCount:      len(p.ShiftIDs),
		Status:          p.Status,
		Notes:           p.Notes,
		OtherDeductions: make([]DeductionResponse, 0, len(p.OtherDeductions)),
	}
	for _, d := range p.OtherDeductions {
		resp.OtherDeductions = append(resp.OtherDeductions, DeductionResponse{Description: d.Description, Amount: d.Amount})
	}
	if p.PaymentDate != nil {
		formatted := p.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &formatted
	}
	return resp
}

type PeriodStatsResponse struct {
	PeriodStart   string          `json:"period_start"`
	EmployeeCount int             `json:"employee_count"`
	DraftCount    int             `json:"draft_count"`
	ApprovedCount int             `json:"approved_count"`
	PaidCount     int             `json:"paid_count"`
	CanceledCount int             `json:"canceled_count"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalNet      decimal.Decimal `json:"total_net"`
}
