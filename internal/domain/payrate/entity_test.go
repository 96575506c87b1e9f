package payrate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTiers_CoverEveryKind(t *testing.T) {
	tiers := DefaultTiers()

	for _, kind := range Kinds {
		tier, ok := tiers[kind]
		require.True(t, ok, "missing default for %s", kind)
		assert.True(t, tier.Multiplier.IsPositive())
	}

	require.NotNil(t, tiers[KindRegular].HoursThreshold)
	assert.True(t, tiers[KindRegular].HoursThreshold.Equal(decimal.NewFromInt(8)))
	require.NotNil(t, tiers[KindOvertime125].HoursThreshold)
	assert.True(t, tiers[KindOvertime125].HoursThreshold.Equal(decimal.NewFromInt(2)))
	assert.Nil(t, tiers[KindOvertime150].HoursThreshold)
}

func TestResolveTiers_OverlaysActiveCompanyTiers(t *testing.T) {
	custom := RateTier{
		ID:         "tier-1",
		Kind:       KindHoliday,
		Multiplier: decimal.NewFromInt(2),
		IsActive:   true,
	}
	inactive := RateTier{
		ID:         "tier-2",
		Kind:       KindNight,
		Multiplier: decimal.NewFromInt(3),
		IsActive:   false,
	}

	resolved := ResolveTiers([]RateTier{custom, inactive})

	assert.Equal(t, "tier-1", resolved[KindHoliday].ID)
	assert.True(t, resolved[KindHoliday].Multiplier.Equal(decimal.NewFromInt(2)))

	// Inactive overrides are ignored in favor of the default.
	assert.Empty(t, resolved[KindNight].ID)
	assert.True(t, resolved[KindNight].Multiplier.Equal(decimal.NewFromFloat(1.25)))
}

func TestKindValid(t *testing.T) {
	for _, kind := range Kinds {
		assert.True(t, kind.Valid())
	}
	assert.False(t, Kind("DoubleTime").Valid())
}
