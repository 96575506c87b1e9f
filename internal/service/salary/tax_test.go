package salary

import (
	"testing"

	"github.com/shiftpay/payroll-engine-go/internal/domain/taxconfig"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestComputeTax_ProgressiveBrackets(t *testing.T) {
	config := taxconfig.TaxConfig{
		Brackets: []taxconfig.TaxBracket{
			{Limit: decPtr(5000), Rate: dec(0.10), Position: 0},
			{Limit: nil, Rate: dec(0.20), Position: 1},
		},
	}

	// First 5000 at 10%, remaining 5000 at 20%.
	result := computeTax(dec(10000), config)

	assert.True(t, result.TaxDeduction.Equal(dec(1500)), "got %s", result.TaxDeduction)
	assert.True(t, result.NetPay.Equal(dec(8500)), "got %s", result.NetPay)
	assert.Empty(t, result.OtherDeductions)
}

func TestComputeTax_GrossBelowFirstLimit(t *testing.T) {
	config := taxconfig.TaxConfig{
		Brackets: []taxconfig.TaxBracket{
			{Limit: decPtr(5000), Rate: dec(0.10), Position: 0},
			{Limit: nil, Rate: dec(0.20), Position: 1},
		},
	}

	result := computeTax(dec(3000), config)

	assert.True(t, result.TaxDeduction.Equal(dec(300)), "got %s", result.TaxDeduction)
}

func TestComputeTax_UnsortedBracketsAreSortedFirst(t *testing.T) {
	// Stored out of order, open-ended bracket first.
	config := taxconfig.TaxConfig{
		Brackets: []taxconfig.TaxBracket{
			{Limit: nil, Rate: dec(0.30)},
			{Limit: decPtr(10000), Rate: dec(0.20)},
			{Limit: decPtr(5000), Rate: dec(0.10)},
		},
	}

	// 5000*0.1 + 5000*0.2 + 2000*0.3 = 2100.
	result := computeTax(dec(12000), config)

	assert.True(t, result.TaxDeduction.Equal(dec(2100)), "got %s", result.TaxDeduction)
}

func TestComputeTax_PercentEncodedRatesNormalized(t *testing.T) {
	// Imported data sometimes carries 10 meaning 10%.
	config := taxconfig.TaxConfig{
		Brackets: []taxconfig.TaxBracket{
			{Limit: nil, Rate: dec(10)},
		},
	}

	result := computeTax(dec(1000), config)

	assert.True(t, result.TaxDeduction.Equal(dec(100)), "got %s", result.TaxDeduction)
}

func TestComputeTax_OtherTaxes(t *testing.T) {
	config := taxconfig.TaxConfig{
		Brackets: []taxconfig.TaxBracket{
			{Limit: nil, Rate: dec(0.10)},
		},
		OtherTaxes: []taxconfig.OtherTax{
			{Name: "Health", Rate: dec(0.05)},
			{Name: "Union", Rate: dec(0.02), FixedAmount: dec(200)},
			{Name: "Dormant", Rate: decimal.Zero},
		},
	}

	result := computeTax(dec(10000), config)

	assert.True(t, result.TaxDeduction.Equal(dec(1000)))

	// Fixed amount wins over rate; zero-valued levies are dropped.
	require.Len(t, result.OtherDeductions, 2)
	assert.Equal(t, "Health", result.OtherDeductions[0].Description)
	assert.True(t, result.OtherDeductions[0].Amount.Equal(dec(500)))
	assert.Equal(t, "Union", result.OtherDeductions[1].Description)
	assert.True(t, result.OtherDeductions[1].Amount.Equal(dec(200)))

	// 10000 - 1000 - 500 - 200.
	assert.True(t, result.NetPay.Equal(dec(8300)), "got %s", result.NetPay)
}

func TestComputeTax_NoBrackets(t *testing.T) {
	result := computeTax(dec(5000), taxconfig.TaxConfig{})

	assert.True(t, result.TaxDeduction.IsZero())
	assert.True(t, result.NetPay.Equal(dec(5000)))
}

func TestNetPayOf_FlooredAtZero(t *testing.T) {
	net := netPayOf(dec(100), dec(50), dec(200))

	assert.True(t, net.IsZero())
}
