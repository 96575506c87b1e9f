package payrate

import (
	"github.com/shiftpay/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRateTierRequest struct {
	Kind           string           `json:"kind"`
	Multiplier     decimal.Decimal  `json:"multiplier"`
	HoursThreshold *decimal.Decimal `json:"hours_threshold,omitempty"`
	Description    *string          `json:"description,omitempty"`
}

func (r *CreateRateTierRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Kind(r.Kind).Valid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be one of Regular, Overtime125, Overtime150, Night, Holiday, RestDay"})
	}
	if !r.Multiplier.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "multiplier", Message: "must be positive"})
	}
	if r.HoursThreshold != nil && r.HoursThreshold.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hours_threshold", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRateTierRequest struct {
	ID             string
	Multiplier     *decimal.Decimal `json:"multiplier,omitempty"`
	HoursThreshold *decimal.Decimal `json:"hours_threshold,omitempty"`
	Description    *string          `json:"description,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

func (r *UpdateRateTierRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Multiplier != nil && !r.Multiplier.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "multiplier", Message: "must be positive"})
	}
	if r.HoursThreshold != nil && r.HoursThreshold.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hours_threshold", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RateTierResponse struct {
	ID             string           `json:"id"`
	CompanyID      string           `json:"company_id"`
	Kind           Kind             `json:"kind"`
	Multiplier     decimal.Decimal  `json:"multiplier"`
	HoursThreshold *decimal.Decimal `json:"hours_threshold,omitempty"`
	Description    *string          `json:"description,omitempty"`
	IsActive       bool             `json:"is_active"`
}

func ToRateTierResponse(t RateTier) RateTierResponse {
	return RateTierResponse{
		ID:             t.ID,
		CompanyID:      t.CompanyID,
		Kind:           t.Kind,
		Multiplier:     t.Multiplier,
		HoursThreshold: t.HoursThreshold,
		Description:    t.Description,
		IsActive:       t.IsActive,
	}
}
