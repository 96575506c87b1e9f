package taxconfig

import (
	"github.com/shiftpay/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TaxBracketRequest struct {
	Limit *decimal.Decimal `json:"limit,omitempty"`
	Rate  decimal.Decimal  `json:"rate"`
}

type OtherTaxRequest struct {
	Name        string          `json:"name"`
	Rate        decimal.Decimal `json:"rate"`
	FixedAmount decimal.Decimal `json:"fixed_amount"`
}

type CreateTaxConfigRequest struct {
	TaxName     string              `json:"tax_name"`
	CountryCode string              `json:"country_code"`
	Currency    string              `json:"currency"`
	Brackets    []TaxBracketRequest `json:"brackets"`
	OtherTaxes  []OtherTaxRequest   `json:"other_taxes,omitempty"`
	IsActive    *bool               `json:"is_active,omitempty"`
}

func (r *CreateTaxConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TaxName) {
		errs = append(errs, validator.ValidationError{Field: "tax_name", Message: "is required"})
	}
	if !validator.IsValidCountryCode(r.CountryCode) {
		errs = append(errs, validator.ValidationError{Field: "country_code", Message: "must be an ISO 3166-1 alpha-2 code"})
	}
	if len(r.Brackets) == 0 {
		errs = append(errs, validator.ValidationError{Field: "brackets", Message: "at least one bracket is required"})
	}
	errs = append(errs, validateBrackets(r.Brackets)...)
	errs = append(errs, validateOtherTaxes(r.OtherTaxes)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateBrackets(brackets []TaxBracketRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	var prevLimit *decimal.Decimal

	for i, b := range brackets {
		field := "brackets[" + validator.Itoa(i) + "]"
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			errs = append(errs, validator.ValidationError{Field: field + ".rate", Message: "must be a fraction between 0 and 1"})
		}
		if b.Limit != nil {
			if !b.Limit.IsPositive() {
				errs = append(errs, validator.ValidationError{Field: field + ".limit", Message: "must be positive"})
			}
			if prevLimit != nil && !b.Limit.GreaterThan(*prevLimit) {
				errs = append(errs, validator.ValidationError{Field: field + ".limit", Message: "must be greater than the previous bracket limit"})
			}
			prevLimit = b.Limit
		} else if i != len(brackets)-1 {
			errs = append(errs, validator.ValidationError{Field: field + ".limit", Message: "only the last bracket may be open-ended"})
		}
	}
	return errs
}

func validateOtherTaxes(taxes []OtherTaxRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, t := range taxes {
		field := "other_taxes[" + validator.Itoa(i) + "]"
		if validator.IsEmpty(t.Name) {
			errs = append(errs, validator.ValidationError{Field: field + ".name", Message: "is required"})
		}
		if t.Rate.IsNegative() || t.Rate.GreaterThan(decimal.NewFromInt(1)) {
			errs = append(errs, validator.ValidationError{Field: field + ".rate", Message: "must be a fraction between 0 and 1"})
		}
		if t.FixedAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field + ".fixed_amount", Message: "must be non-negative"})
		}
	}
	return errs
}

type UpdateTaxConfigRequest struct {
	ID          string
	TaxName     *string             `json:"tax_name,omitempty"`
	Currency    *string             `json:"currency,omitempty"`
	Brackets    []TaxBracketRequest `json:"brackets,omitempty"`
	OtherTaxes  []OtherTaxRequest   `json:"other_taxes,omitempty"`
	IsActive    *bool               `json:"is_active,omitempty"`
}

func (r *UpdateTaxConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TaxName != nil && validator.IsEmpty(*r.TaxName) {
		errs = append(errs, validator.ValidationError{Field: "tax_name", Message: "must not be empty"})
	}
	errs = append(errs, validateBrackets(r.Brackets)...)
	errs = append(errs, validateOtherTaxes(r.OtherTaxes)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaxBracketResponse struct {
	Limit *decimal.Decimal `json:"limit,omitempty"`
	Rate  decimal.Decimal  `json:"rate"`
}

type OtherTaxResponse struct {
	Name        string          `json:"name"`
	Rate        decimal.Decimal `json:"rate"`
	FixedAmount decimal.Decimal `json:"fixed_amount"`
}

type TaxConfigResponse struct {
	ID          string               `json:"id"`
	CompanyID   string               `json:"company_id"`
	TaxName     string               `json:"tax_name"`
	CountryCode string               `json:"country_code"`
	Currency    string               `json:"currency"`
	Brackets    []TaxBracketResponse `json:"brackets"`
	OtherTaxes  []OtherTaxResponse   `json:"other_taxes"`
	IsActive    bool                 `json:"is_active"`
}

func ToTaxConfigResponse(c TaxConfig) TaxConfigResponse {
	resp := TaxConfigResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		TaxName:     c.TaxName,
		CountryCode: c.CountryCode,
		Currency:    c.Currency,
		IsActive:    c.IsActive,
		Brackets:    make([]TaxBracketResponse, 0, len(c.Brackets)),
		OtherTaxes:  make([]OtherTaxResponse, 0, len(c.OtherTaxes)),
	}
	for _, b := range c.SortedBrackets() {
		resp.Brackets = append(resp.Brackets, TaxBracketResponse{Limit: b.Limit, Rate: b.Rate})
	}
	for _, t := range c.OtherTaxes {
		resp.OtherTaxes = append(resp.OtherTaxes, OtherTaxResponse{Name: t.Name, Rate: t.Rate, FixedAmount: t.FixedAmount})
	}
	return resp
}
