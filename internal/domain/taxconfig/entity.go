package taxconfig

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TaxBracket is one progressive bracket. Limit is the upper bound of
// cumulative income the bracket covers; a nil Limit marks the open-ended
// top bracket. Rate is a fraction in [0,1].
type TaxBracket struct {
	ID          string
	TaxConfigID string
	Limit       *decimal.Decimal
	Rate        decimal.Decimal
	Position    int
}

// OtherTax is a flat levy applied on top of bracket tax. Either Rate or
// FixedAmount drives it; a fixed amount wins when both are set.
type OtherTax struct {
	ID          string
	TaxConfigID string
	Name        string
	Rate        decimal.Decimal
	FixedAmount decimal.Decimal
}

type TaxConfig struct {
	ID          string
	CompanyID   string
	TaxName     string
	CountryCode string
	Currency    string
	Brackets    []TaxBracket
	OtherTaxes  []OtherTax
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var one = decimal.NewFromInt(1)

// SortedBrackets returns the brackets ordered by ascending limit, with the
// open-ended bracket last.
func (c TaxConfig) SortedBrackets() []TaxBracket {
	sorted := make([]TaxBracket, len(c.Brackets))
	copy(sorted, c.Brackets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Limit == nil {
			return false
		}
		if sorted[j].Limit == nil {
			return true
		}
		return sorted[i].Limit.LessThan(*sorted[j].Limit)
	})
	return sorted
}

// NormalizeRate folds percentage-encoded rates back into fractions.
// Configs written through the API are validated to [0,1], but imported
// data may still carry 10 meaning 10%.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(one) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}
