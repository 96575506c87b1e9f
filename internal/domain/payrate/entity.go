package payrate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies a compensation tier.
type Kind string

const (
	KindRegular     Kind = "Regular"
	KindOvertime125 Kind = "Overtime125"
	KindOvertime150 Kind = "Overtime150"
	KindNight       Kind = "Night"
	KindHoliday     Kind = "Holiday"
	KindRestDay     Kind = "RestDay"
)

// Kinds lists every tier in classification order.
var Kinds = []Kind{KindRegular, KindOvertime125, KindOvertime150, KindNight, KindHoliday, KindRestDay}

func (k Kind) Valid() bool {
	for _, kind := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// RateTier is a company-scoped pay multiplier for one tier kind.
// HoursThreshold caps the hours a tier may absorb in a regular-day
// breakdown; nil means uncapped.
type RateTier struct {
	ID             string
	CompanyID      string
	Kind           Kind
	Multiplier     decimal.Decimal
	HoursThreshold *decimal.Decimal
	Description    *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var (
	eightHours = decimal.NewFromInt(8)
	twoHours   = decimal.NewFromInt(2)
)

// DefaultTiers returns the built-in tier table used when a company has no
// active override for a kind.
func DefaultTiers() map[Kind]RateTier {
	return map[Kind]RateTier{
		KindRegular:     {Kind: KindRegular, Multiplier: decimal.NewFromFloat(1.0), HoursThreshold: &eightHours, IsActive: true},
		KindOvertime125: {Kind: KindOvertime125, Multiplier: decimal.NewFromFloat(1.25), HoursThreshold: &twoHours, IsActive: true},
		KindOvertime150: {Kind: KindOvertime150, Multiplier: decimal.NewFromFloat(1.5), IsActive: true},
		KindNight:       {Kind: KindNight, Multiplier: decimal.NewFromFloat(1.25), IsActive: true},
		KindHoliday:     {Kind: KindHoliday, Multiplier: decimal.NewFromFloat(1.5), IsActive: true},
		KindRestDay:     {Kind: KindRestDay, Multiplier: decimal.NewFromFloat(1.5), IsActive: true},
	}
}

// ResolveTiers overlays a company's active tiers on the default table so
// every kind always resolves to a usable tier.
func ResolveTiers(companyTiers []RateTier) map[Kind]RateTier {
	resolved := DefaultTiers()
	for _, tier := range companyTiers {
		if tier.IsActive {
			resolved[tier.Kind] = tier
		}
	}
	return resolved
}
