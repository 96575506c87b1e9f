package taxconfig

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpay/payroll-engine-go/internal/pkg/validator"
)

func validCreateRequest() CreateTaxConfigRequest {
	return CreateTaxConfigRequest{
		TaxName:     "Income Tax",
		CountryCode: "IL",
		Currency:    "ILS",
		Brackets: []TaxBracketRequest{
			{Limit: limitOf(5000), Rate: decimal.NewFromFloat(0.1)},
			{Limit: nil, Rate: decimal.NewFromFloat(0.2)},
		},
	}
}

func TestCreateTaxConfigRequest_Valid(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateTaxConfigRequest_RequiredFields(t *testing.T) {
	req := CreateTaxConfigRequest{}

	err := req.Validate()

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "tax_name")
	assert.Contains(t, fields, "country_code")
	assert.Contains(t, fields, "brackets")
}

func TestCreateTaxConfigRequest_RateOutOfRange(t *testing.T) {
	req := validCreateRequest()
	req.Brackets[0].Rate = decimal.NewFromInt(10)

	err := req.Validate()

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "brackets[0].rate")
}

func TestCreateTaxConfigRequest_BracketLimitsMustIncrease(t *testing.T) {
	req := validCreateRequest()
	req.Brackets = []TaxBracketRequest{
		{Limit: limitOf(5000), Rate: decimal.NewFromFloat(0.1)},
		{Limit: limitOf(3000), Rate: decimal.NewFromFloat(0.2)},
	}

	err := req.Validate()

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "brackets[1].limit")
}

func TestCreateTaxConfigRequest_OnlyLastBracketOpenEnded(t *testing.T) {
	req := validCreateRequest()
	req.Brackets = []TaxBracketRequest{
		{Limit: nil, Rate: decimal.NewFromFloat(0.1)},
		{Limit: limitOf(5000), Rate: decimal.NewFromFloat(0.2)},
	}

	err := req.Validate()

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "brackets[0].limit")
}

func TestCreateTaxConfigRequest_OtherTaxValidation(t *testing.T) {
	req := validCreateRequest()
	req.OtherTaxes = []OtherTaxRequest{
		{Name: "", Rate: decimal.NewFromInt(2), FixedAmount: decimal.NewFromInt(-5)},
	}

	err := req.Validate()

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "other_taxes[0].name")
	assert.Contains(t, fields, "other_taxes[0].rate")
	assert.Contains(t, fields, "other_taxes[0].fixed_amount")
}

func TestUpdateTaxConfigRequest_PartialUpdateValid(t *testing.T) {
	name := "Revised Tax"
	req := UpdateTaxConfigRequest{ID: "config-1", TaxName: &name}

	assert.NoError(t, req.Validate())
}
