package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft    Status = "Draft"
	StatusApproved Status = "Approved"
	StatusPaid     Status = "Paid"
	StatusCanceled Status = "Canceled"
)

// CanTransitionTo encodes the workflow state machine. Draft periods can be
// approved or canceled, approved periods can be paid, canceled or
// re-approved (approval retries re-emit the same ledger entry). Paid and
// canceled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusApproved || next == StatusCanceled
	case StatusApproved:
		return next == StatusApproved || next == StatusPaid || next == StatusCanceled
	default:
		return false
	}
}

// Deduction is a non-tax withholding applied to a salary period.
type Deduction struct {
	ID             string
	SalaryPeriodID string
	Description    string
	Amount         decimal.Decimal
}

// SalaryPeriod is the per-employee monthly aggregate. TotalHours and
// TotalPay accumulate from shift contributions; tax and net are filled by
// calculation.
type SalaryPeriod struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	TotalHours      decimal.Decimal
	TotalPay        decimal.Decimal
	Bonus           decimal.Decimal
	TaxDeduction    decimal.Decimal
	OtherDeductions []Deduction
	NetPay          decimal.Decimal
	ShiftIDs        []string
	Status          Status
	Notes           *string
	PaymentDate     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GrossPay is shift pay plus bonus.
func (p SalaryPeriod) GrossPay() decimal.Decimal {
	return p.TotalPay.Add(p.Bonus)
}

// DeductionsTotal sums the non-tax deductions.
func (p SalaryPeriod) DeductionsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.OtherDeductions {
		total = total.Add(d.Amount)
	}
	return total
}

// PeriodStartFor truncates a timestamp to the first instant of its month
// in UTC. Every shift contributes to the period of its start time's month.
func PeriodStartFor(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodEndFor returns the first instant of the following month.
func PeriodEndFor(t time.Time) time.Time {
	return PeriodStartFor(t).AddDate(0, 1, 0)
}

// ShiftContribution is the slice of a shift the aggregator cares about.
type ShiftContribution struct {
	ShiftID string
	Date    time.Time
	Hours   decimal.Decimal
	Pay     decimal.Decimal
}
