package shift

import (
	"time"

	"github.com/shiftpay/payroll-engine-go/internal/domain/payrate"
	"github.com/shopspring/decimal"
)

// DayType is the calendar classification of a shift's date.
type DayType string

const (
	DayTypeRegular DayType = "Regular"
	DayTypeHoliday DayType = "Holiday"
	DayTypeRestDay DayType = "RestDay"
)

type ShiftType string

const (
	ShiftTypeDay   ShiftType = "Day"
	ShiftTypeNight ShiftType = "Night"
)

// BreakdownSegment is one priced slice of a shift. Segments are ordered by
// Position and their hours sum to the shift's worked hours.
type BreakdownSegment struct {
	ID         string
	ShiftID    string
	Kind       payrate.Kind
	Hours      decimal.Decimal
	Multiplier decimal.Decimal
	Pay        decimal.Decimal
	RateTierID *string
	Position   int
}

type Shift struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	ShiftDate    time.Time
	StartTime    time.Time
	EndTime      *time.Time
	HoursWorked  decimal.Decimal
	HourlySalary decimal.Decimal
	DayType      DayType
	ShiftType    ShiftType
	Breakdown    []BreakdownSegment
	TotalPay     decimal.Decimal
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Open reports whether the shift has no recorded end time. Open shifts are
// treated as unbounded for overlap detection.
func (s Shift) Open() bool {
	return s.EndTime == nil
}
