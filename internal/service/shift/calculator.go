package shift

import (
	"time"

	"github.com/shiftpay/payroll-engine-go/internal/domain/payrate"
	"github.com/shiftpay/payroll-engine-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// CalendarFacts carries the calendar classification inputs for one date.
type CalendarFacts struct {
	IsHoliday bool
	IsRestDay bool
}

// BreakdownResult is the priced outcome for one shift.
type BreakdownResult struct {
	DayType   shift.DayType
	ShiftType shift.ShiftType
	Segments  []shift.BreakdownSegment
	TotalPay  decimal.Decimal
}

var sixtyMinutes = decimal.NewFromInt(60)

// EffectiveHours resolves the hours a shift covers. An explicit value wins
// over the recorded interval.
func EffectiveHours(start time.Time, end *time.Time, explicit *decimal.Decimal) (decimal.Decimal, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if end == nil {
		return decimal.Zero, shift.ErrInvalidInterval
	}
	if !end.After(start) {
		return decimal.Zero, shift.ErrInvalidInterval
	}
	minutes := decimal.NewFromInt(int64(end.Sub(start) / time.Minute))
	return minutes.Div(sixtyMinutes).Round(2), nil
}

// classify resolves the pricing tier for a shift in fixed priority:
// Holiday, then RestDay, then Night, then Regular.
func classify(start time.Time, end *time.Time, facts CalendarFacts) (shift.DayType, shift.ShiftType, payrate.Kind) {
	if facts.IsHoliday {
		return shift.DayTypeHoliday, shift.ShiftTypeDay, payrate.KindHoliday
	}
	if facts.IsRestDay {
		return shift.DayTypeRestDay, shift.ShiftTypeDay, payrate.KindRestDay
	}
	if start.Hour() >= 22 || (end != nil && end.Hour() <= 6) {
		return shift.DayTypeRegular, shift.ShiftTypeNight, payrate.KindNight
	}
	return shift.DayTypeRegular, shift.ShiftTypeDay, payrate.KindRegular
}

// ComputeBreakdown prices a shift's worked hours against the resolved rate
// table. Non-regular days collapse into a single segment at that tier's
// multiplier; regular days drain hours greedily through Regular,
// Overtime125 and Overtime150.
func ComputeBreakdown(start time.Time, end *time.Time, hours, hourlySalary decimal.Decimal, tiers map[payrate.Kind]payrate.RateTier, facts CalendarFacts) BreakdownResult {
	dayType, shiftType, kind := classify(start, end, facts)

	result := BreakdownResult{
		DayType:   dayType,
		ShiftType: shiftType,
		TotalPay:  decimal.Zero,
	}

	if hours.IsZero() {
		return result
	}

	if kind != payrate.KindRegular {
		result.Segments = []shift.BreakdownSegment{newSegment(kind, hours, hourlySalary, tiers, 0)}
	} else {
		result.Segments = regularSegments(hours, hourlySalary, tiers)
	}

	total := decimal.Zero
	for _, seg := range result.Segments {
		total = total.Add(seg.Hours.Mul(hourlySalary).Mul(seg.Multiplier))
	}
	result.TotalPay = total.Round(2)

	// Fold rounding drift into the last segment so segment pays sum to
	// the rounded total.
	roundedSum := decimal.Zero
	for i := range result.Segments {
		result.Segments[i].Pay = result.Segments[i].Pay.Round(2)
		roundedSum = roundedSum.Add(result.Segments[i].Pay)
	}
	if drift := result.TotalPay.Sub(roundedSum); !drift.IsZero() {
		last := len(result.Segments) - 1
		result.Segments[last].Pay = result.Segments[last].Pay.Add(drift)
	}

	return result
}

// regularSegments drains hours through the three regular-day buckets in
// order. Each non-empty bucket becomes one segment. The last bucket takes
// whatever remains; a threshold configured there must not drop paid hours.
func regularSegments(hours, hourlySalary decimal.Decimal, tiers map[payrate.Kind]payrate.RateTier) []shift.BreakdownSegment {
	var segments []shift.BreakdownSegment
	remaining := hours

	kinds := []payrate.Kind{payrate.KindRegular, payrate.KindOvertime125, payrate.KindOvertime150}
	for i, kind := range kinds {
		if !remaining.IsPositive() {
			break
		}
		tier := resolveTier(kind, tiers)

		bucket := remaining
		if i < len(kinds)-1 && tier.HoursThreshold != nil && bucket.GreaterThan(*tier.HoursThreshold) {
			bucket = *tier.HoursThreshold
		}
		if !bucket.IsPositive() {
			continue
		}

		segments = append(segments, newSegment(kind, bucket, hourlySalary, tiers, len(segments)))
		remaining = remaining.Sub(bucket)
	}
	return segments
}

func resolveTier(kind payrate.Kind, tiers map[payrate.Kind]payrate.RateTier) payrate.RateTier {
	if tier, ok := tiers[kind]; ok {
		return tier
	}
	return payrate.DefaultTiers()[kind]
}

func newSegment(kind payrate.Kind, hours, hourlySalary decimal.Decimal, tiers map[payrate.Kind]payrate.RateTier, position int) shift.BreakdownSegment {
	tier := resolveTier(kind, tiers)
	seg := shift.BreakdownSegment{
		Kind:       kind,
		Hours:      hours,
		Multiplier: tier.Multiplier,
		Pay:        hours.Mul(hourlySalary).Mul(tier.Multiplier),
		Position:   position,
	}
	if tier.ID != "" {
		id := tier.ID
		seg.RateTierID = &id
	}
	return seg
}
