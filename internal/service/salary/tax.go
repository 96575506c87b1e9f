package salary

import (
	"context"
	"errors"

	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/shiftpay/payroll-engine-go/internal/domain/taxconfig"
	"github.com/shopspring/decimal"
)

type taxResult struct {
	TaxDeduction    decimal.Decimal
	OtherDeductions []salary.Deduction
	NetPay          decimal.Decimal
}

// computeTax runs the progressive brackets and flat levies of a tax
// configuration against gross income. Brackets are sorted defensively
// rather than trusting stored order.
func computeTax(gross decimal.Decimal, config taxconfig.TaxConfig) taxResult {
	tax := decimal.Zero
	previousLimit := decimal.Zero

	for _, bracket := range config.SortedBrackets() {
		taxable := gross
		if bracket.Limit != nil && bracket.Limit.LessThan(taxable) {
			taxable = *bracket.Limit
		}
		taxable = taxable.Sub(previousLimit)
		if taxable.IsNegative() {
			taxable = decimal.Zero
		}

		rate := taxconfig.NormalizeRate(bracket.Rate)
		tax = tax.Add(taxable.Mul(rate))

		if bracket.Limit == nil {
			break
		}
		previousLimit = *bracket.Limit
	}
	tax = tax.Round(2)

	var deductions []salary.Deduction
	deductionsTotal := decimal.Zero
	for _, other := range config.OtherTaxes {
		amount := other.FixedAmount
		if amount.IsZero() {
			amount = gross.Mul(taxconfig.NormalizeRate(other.Rate)).Round(2)
		}
		// Zero-valued entries are omitted.
		if amount.IsZero() {
			continue
		}
		deductions = append(deductions, salary.Deduction{Description: other.Name, Amount: amount})
		deductionsTotal = deductionsTotal.Add(amount)
	}

	return taxResult{
		TaxDeduction:    tax,
		OtherDeductions: deductions,
		NetPay:          netPayOf(gross, tax, deductionsTotal),
	}
}

// netPayOf floors net pay at zero even when deductions exceed gross.
func netPayOf(gross, tax, deductions decimal.Decimal) decimal.Decimal {
	net := gross.Sub(tax).Sub(deductions)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// resolveTaxConfig prefers the automation default and falls back to the
// active configuration for the employee's country.
func (s *SalaryServiceImpl) resolveTaxConfig(ctx context.Context, companyID, employeeID string) (taxconfig.TaxConfig, error) {
	settings, err := s.settingsRepo.GetSettings(ctx, companyID)
	if err != nil && !errors.Is(err, automation.ErrSettingsNotFound) {
		return taxconfig.TaxConfig{}, err
	}
	if err == nil && settings.DefaultTaxConfigID != nil {
		config, err := s.taxRepo.GetByID(ctx, *settings.DefaultTaxConfigID, companyID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, taxconfig.ErrTaxConfigNotFound) {
			return taxconfig.TaxConfig{}, err
		}
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return taxconfig.TaxConfig{}, err
	}
	return s.taxRepo.GetActiveByCountry(ctx, companyID, emp.CountryCode)
}
