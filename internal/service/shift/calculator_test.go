package shift

import (
	"testing"
	"time"

	"github.com/shiftpay/payroll-engine-go/internal/domain/payrate"
	domainShift "github.com/shiftpay/payroll-engine-go/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoursOf(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func TestEffectiveHours_ExplicitWins(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	explicit := hoursOf(6)

	hours, err := EffectiveHours(start, &end, &explicit)

	require.NoError(t, err)
	assert.True(t, hours.Equal(hoursOf(6)))
}

func TestEffectiveHours_ExplicitZeroIsValid(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	explicit := decimal.Zero

	hours, err := EffectiveHours(start, nil, &explicit)

	require.NoError(t, err)
	assert.True(t, hours.IsZero())
}

func TestEffectiveHours_DerivedFromInterval(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	hours, err := EffectiveHours(start, &end, nil)

	require.NoError(t, err)
	assert.True(t, hours.Equal(hoursOf(1.5)), "got %s", hours)
}

func TestEffectiveHours_InvalidIntervals(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	_, err := EffectiveHours(start, nil, nil)
	assert.ErrorIs(t, err, domainShift.ErrInvalidInterval)

	_, err = EffectiveHours(start, &start, nil)
	assert.ErrorIs(t, err, domainShift.ErrInvalidInterval)

	_, err = EffectiveHours(start, &before, nil)
	assert.ErrorIs(t, err, domainShift.ErrInvalidInterval)
}

func TestComputeBreakdown_RegularDayWithOvertime(t *testing.T) {
	// Tuesday, 08:00 to 19:00, 11 hours at 100/h.
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(11 * time.Hour)

	result := ComputeBreakdown(start, &end, hoursOf(11), hoursOf(100), payrate.DefaultTiers(), CalendarFacts{})

	assert.Equal(t, domainShift.DayTypeRegular, result.DayType)
	assert.Equal(t, domainShift.ShiftTypeDay, result.ShiftType)
	require.Len(t, result.Segments, 3)

	assert.Equal(t, payrate.KindRegular, result.Segments[0].Kind)
	assert.True(t, result.Segments[0].Hours.Equal(hoursOf(8)))
	assert.True(t, result.Segments[0].Pay.Equal(hoursOf(800)))

	assert.Equal(t, payrate.KindOvertime125, result.Segments[1].Kind)
	assert.True(t, result.Segments[1].Hours.Equal(hoursOf(2)))
	assert.True(t, result.Segments[1].Pay.Equal(hoursOf(250)))

	assert.Equal(t, payrate.KindOvertime150, result.Segments[2].Kind)
	assert.True(t, result.Segments[2].Hours.Equal(hoursOf(1)))
	assert.True(t, result.Segments[2].Pay.Equal(hoursOf(150)))

	assert.True(t, result.TotalPay.Equal(hoursOf(1200)), "got %s", result.TotalPay)
}

func TestComputeBreakdown_RegularDayWithinThreshold(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Hour)

	result := ComputeBreakdown(start, &end, hoursOf(6), hoursOf(50), payrate.DefaultTiers(), CalendarFacts{})

	require.Len(t, result.Segments, 1)
	assert.Equal(t, payrate.KindRegular, result.Segments[0].Kind)
	assert.True(t, result.TotalPay.Equal(hoursOf(300)))
}

func TestComputeBreakdown_NightShift(t *testing.T) {
	// 23:00 to 05:00 the next day.
	start := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Hour)

	result := ComputeBreakdown(start, &end, hoursOf(6), hoursOf(100), payrate.DefaultTiers(), CalendarFacts{})

	assert.Equal(t, domainShift.ShiftTypeNight, result.ShiftType)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, payrate.KindNight, result.Segments[0].Kind)
	assert.True(t, result.Segments[0].Hours.Equal(hoursOf(6)))
	assert.True(t, result.TotalPay.Equal(hoursOf(750)), "got %s", result.TotalPay)
}

func TestComputeBreakdown_RestDay(t *testing.T) {
	// Saturday.
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(5 * time.Hour)

	result := ComputeBreakdown(start, &end, hoursOf(5), hoursOf(100), payrate.DefaultTiers(), CalendarFacts{IsRestDay: true})

	assert.Equal(t, domainShift.DayTypeRestDay, result.DayType)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, payrate.KindRestDay, result.Segments[0].Kind)
	assert.True(t, result.TotalPay.Equal(hoursOf(750)))
}

func TestComputeBreakdown_HolidayBeatsRestDayAndNight(t *testing.T) {
	// A Saturday night shift on a public holiday prices as Holiday.
	start := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	result := ComputeBreakdown(start, &end, hoursOf(4), hoursOf(100), payrate.DefaultTiers(), CalendarFacts{IsHoliday: true, IsRestDay: true})

	assert.Equal(t, domainShift.DayTypeHoliday, result.DayType)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, payrate.KindHoliday, result.Segments[0].Kind)
	assert.True(t, result.TotalPay.Equal(hoursOf(600)))
}

func TestComputeBreakdown_ZeroHours(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	result := ComputeBreakdown(start, nil, decimal.Zero, hoursOf(100), payrate.DefaultTiers(), CalendarFacts{})

	assert.Empty(t, result.Segments)
	assert.True(t, result.TotalPay.IsZero())
}

func TestComputeBreakdown_CompanyTierOverride(t *testing.T) {
	threshold := hoursOf(6)
	tiers := payrate.ResolveTiers([]payrate.RateTier{
		{ID: "tier-regular", Kind: payrate.KindRegular, Multiplier: hoursOf(1), HoursThreshold: &threshold, IsActive: true},
	})

	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(7 * time.Hour)

	result := ComputeBreakdown(start, &end, hoursOf(7), hoursOf(100), tiers, CalendarFacts{})

	require.Len(t, result.Segments, 2)
	assert.True(t, result.Segments[0].Hours.Equal(hoursOf(6)))
	require.NotNil(t, result.Segments[0].RateTierID)
	assert.Equal(t, "tier-regular", *result.Segments[0].RateTierID)

	// The default fallback tier carries no id.
	assert.Nil(t, result.Segments[1].RateTierID)
}

func TestComputeBreakdown_Overtime150AbsorbsRemainder(t *testing.T) {
	// A threshold on the last bucket must not drop worked hours.
	threshold := hoursOf(1)
	tiers := payrate.ResolveTiers([]payrate.RateTier{
		{ID: "tier-ot150", Kind: payrate.KindOvertime150, Multiplier: hoursOf(1.5), HoursThreshold: &threshold, IsActive: true},
	})

	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(13 * time.Hour)

	result := ComputeBreakdown(start, &end, hoursOf(13), hoursOf(10), tiers, CalendarFacts{})

	require.Len(t, result.Segments, 3)
	assert.Equal(t, payrate.KindOvertime150, result.Segments[2].Kind)
	assert.True(t, result.Segments[2].Hours.Equal(hoursOf(3)), "got %s", result.Segments[2].Hours)

	total := decimal.Zero
	for _, seg := range result.Segments {
		total = total.Add(seg.Hours)
	}
	assert.True(t, total.Equal(hoursOf(13)), "got %s", total)
	assert.True(t, result.TotalPay.Equal(hoursOf(150)), "got %s", result.TotalPay)
}

func TestComputeBreakdown_SegmentPaysSumToTotal(t *testing.T) {
	cases := []struct {
		name   string
		hours  decimal.Decimal
		hourly decimal.Decimal
	}{
		{"awkward rate", hoursOf(10.5), hoursOf(9.99)},
		{"fractional hours", hoursOf(11.33), hoursOf(13.27)},
		{"long shift", hoursOf(14.75), hoursOf(87.6)},
	}

	start := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ComputeBreakdown(start, nil, tc.hours, tc.hourly, payrate.DefaultTiers(), CalendarFacts{})

			segmentHours := decimal.Zero
			segmentPay := decimal.Zero
			for _, seg := range result.Segments {
				segmentHours = segmentHours.Add(seg.Hours)
				segmentPay = segmentPay.Add(seg.Pay)
			}

			assert.True(t, segmentHours.Equal(tc.hours), "hours: got %s want %s", segmentHours, tc.hours)
			assert.True(t, segmentPay.Equal(result.TotalPay), "pay: got %s want %s", segmentPay, result.TotalPay)
		})
	}
}
