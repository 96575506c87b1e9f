package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "Pending"
	EntryStatusCompleted EntryStatus = "Completed"
)

type PaymentTerms string

const (
	PaymentTermsImmediate PaymentTerms = "Immediate"
	PaymentTermsNet30     PaymentTerms = "Net 30"
	PaymentTermsNet45     PaymentTerms = "Net 45"
	PaymentTermsNet60     PaymentTerms = "Net 60"
	PaymentTermsNet90     PaymentTerms = "Net 90"
)

// LedgerEntry is an expense record emitted by the payroll workflow.
// ReferenceKey carries the salary period id so re-approval and payment
// update the same entry instead of minting duplicates.
type LedgerEntry struct {
	ID              string
	CompanyID       string
	TransactionDate time.Time
	TransactionType string
	Category        string
	Amount          decimal.Decimal
	Currency        string
	Description     string
	Status          EntryStatus
	PartyID         string
	BankAccount     *string
	PaymentTerms    PaymentTerms
	DueDate         time.Time
	ReferenceKey    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ClassifyPaymentTerms buckets a due date into standard payment terms by
// its distance from today. Both sides are truncated to their UTC date so
// a due date tomorrow counts as one day out regardless of clock time.
func ClassifyPaymentTerms(dueDate, today time.Time) PaymentTerms {
	days := int(dateOf(dueDate).Sub(dateOf(today)).Hours() / 24)
	switch {
	case days <= 0:
		return PaymentTermsImmediate
	case days <= 30:
		return PaymentTermsNet30
	case days <= 45:
		return PaymentTermsNet45
	case days <= 60:
		return PaymentTermsNet60
	default:
		return PaymentTermsNet90
	}
}

func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
