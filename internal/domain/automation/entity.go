package automation

import "time"

// Settings drives the monthly payroll sweep for one company. The date
// fields are days of month; a day past the month's end clamps to its last
// day.
type Settings struct {
	ID                 string
	CompanyID          string
	Enabled            bool
	CalculationDate    int
	ApprovalDate       int
	PaymentDate        int
	AutoApprove        bool
	AutoSendPayslips   bool
	NotificationDays   int
	DefaultTaxConfigID *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultSettings returns the settings a company starts with before any
// explicit configuration.
func DefaultSettings(companyID string) Settings {
	return Settings{
		CompanyID:        companyID,
		Enabled:          false,
		CalculationDate:  25,
		ApprovalDate:     27,
		PaymentDate:      1,
		AutoApprove:      false,
		AutoSendPayslips: true,
		NotificationDays: 3,
	}
}
