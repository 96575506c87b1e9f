package shift

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpay/payroll-engine-go/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func TestCreateShiftRequest_Valid(t *testing.T) {
	req := CreateShiftRequest{
		StartTime: "2026-03-10T08:00:00Z",
		EndTime:   strPtr("2026-03-10T16:00:00Z"),
	}

	require.NoError(t, req.Validate())

	start, end := req.Times()
	assert.Equal(t, 8, start.Hour())
	require.NotNil(t, end)
	assert.Equal(t, 16, end.Hour())
}

func TestCreateShiftRequest_OpenEndedNeedsHours(t *testing.T) {
	req := CreateShiftRequest{
		StartTime: "2026-03-10T08:00:00Z",
	}

	err := req.Validate()

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "hours_worked")

	hours := decimal.NewFromInt(8)
	req.HoursWorked = &hours
	assert.NoError(t, req.Validate())
}

func TestCreateShiftRequest_InvalidTimestamps(t *testing.T) {
	req := CreateShiftRequest{
		StartTime: "March 10th",
		EndTime:   strPtr("later"),
	}

	err := req.Validate()

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "start_time")
	assert.Contains(t, fields, "end_time")
}

func TestCreateShiftRequest_EndBeforeStart(t *testing.T) {
	req := CreateShiftRequest{
		StartTime: "2026-03-10T16:00:00Z",
		EndTime:   strPtr("2026-03-10T08:00:00Z"),
	}

	err := req.Validate()

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "end_time")
}

func TestCreateShiftRequest_NegativeHours(t *testing.T) {
	hours := decimal.NewFromInt(-1)
	req := CreateShiftRequest{
		StartTime:   "2026-03-10T08:00:00Z",
		HoursWorked: &hours,
	}

	err := req.Validate()

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "hours_worked")
}

func TestUpdateShiftRequest_EmptyIsValid(t *testing.T) {
	req := UpdateShiftRequest{ID: "shift-1"}
	assert.NoError(t, req.Validate())
}
