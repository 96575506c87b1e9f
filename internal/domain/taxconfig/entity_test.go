package taxconfig

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitOf(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestSortedBrackets(t *testing.T) {
	config := TaxConfig{
		Brackets: []TaxBracket{
			{Limit: nil, Rate: decimal.NewFromFloat(0.3)},
			{Limit: limitOf(5000), Rate: decimal.NewFromFloat(0.1)},
			{Limit: limitOf(15000), Rate: decimal.NewFromFloat(0.2)},
		},
	}

	sorted := config.SortedBrackets()

	require.Len(t, sorted, 3)
	assert.True(t, sorted[0].Limit.Equal(decimal.NewFromInt(5000)))
	assert.True(t, sorted[1].Limit.Equal(decimal.NewFromInt(15000)))
	assert.Nil(t, sorted[2].Limit)

	// The stored order is untouched.
	assert.Nil(t, config.Brackets[0].Limit)
}

func TestNormalizeRate(t *testing.T) {
	assert.True(t, NormalizeRate(decimal.NewFromFloat(0.15)).Equal(decimal.NewFromFloat(0.15)))
	assert.True(t, NormalizeRate(decimal.NewFromInt(1)).Equal(decimal.NewFromInt(1)))
	assert.True(t, NormalizeRate(decimal.NewFromInt(10)).Equal(decimal.NewFromFloat(0.1)))
	assert.True(t, NormalizeRate(decimal.NewFromFloat(17.5)).Equal(decimal.NewFromFloat(0.175)))
}
