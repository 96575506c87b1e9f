package automation

import "github.com/shiftpay/payroll-engine-go/internal/pkg/validator"

type UpdateSettingsRequest struct {
	Enabled            *bool   `json:"enabled,omitempty"`
	CalculationDate    *int    `json:"calculation_date,omitempty"`
	ApprovalDate       *int    `json:"approval_date,omitempty"`
	PaymentDate        *int    `json:"payment_date,omitempty"`
	AutoApprove        *bool   `json:"auto_approve,omitempty"`
	AutoSendPayslips   *bool   `json:"auto_send_payslips,omitempty"`
	NotificationDays   *int    `json:"notification_days,omitempty"`
	DefaultTaxConfigID *string `json:"default_tax_config_id,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	dayFields := map[string]*int{
		"calculation_date": r.CalculationDate,
		"approval_date":    r.ApprovalDate,
		"payment_date":     r.PaymentDate,
	}
	for field, value := range dayFields {
		if value != nil && (*value < 1 || *value > 31) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be between 1 and 31"})
		}
	}
	if r.NotificationDays != nil && (*r.NotificationDays < 0 || *r.NotificationDays > 30) {
		errs = append(errs, validator.ValidationError{Field: "notification_days", Message: "must be between 0 and 30"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	ID                 string  `json:"id"`
	CompanyID          string  `json:"company_id"`
	Enabled            bool    `json:"enabled"`
	CalculationDate    int     `json:"calculation_date"`
	ApprovalDate       int     `json:"approval_date"`
	PaymentDate        int     `json:"payment_date"`
	AutoApprove        bool    `json:"auto_approve"`
	AutoSendPayslips   bool    `json:"auto_send_payslips"`
	NotificationDays   int     `json:"notification_days"`
	DefaultTaxConfigID *string `json:"default_tax_config_id,omitempty"`
}

func ToSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		ID:                 s.ID,
		CompanyID:          s.CompanyID,
		Enabled:            s.Enabled,
		CalculationDate:    s.CalculationDate,
		ApprovalDate:       s.ApprovalDate,
		PaymentDate:        s.PaymentDate,
		AutoApprove:        s.AutoApprove,
		AutoSendPayslips:   s.AutoSendPayslips,
		NotificationDays:   s.NotificationDays,
		DefaultTaxConfigID: s.DefaultTaxConfigID,
	}
}
