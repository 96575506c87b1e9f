package automation

import (
	"context"
	"testing"
	"time"

	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	enabled []automation.Settings
}

func (r *fakeSettingsRepo) GetSettings(ctx context.Context, companyID string) (automation.Settings, error) {
	return automation.Settings{}, automation.ErrSettingsNotFound
}

func (r *fakeSettingsRepo) UpsertSettings(ctx context.Context, settings automation.Settings) (automation.Settings, error) {
	return settings, nil
}

func (r *fakeSettingsRepo) ListEnabled(ctx context.Context) ([]automation.Settings, error) {
	return r.enabled, nil
}

type fakeSalaryService struct {
	salary.SalaryService
	calculated []salary.CalculatePeriodRequest
	approved   []salary.CalculatePeriodRequest
	paid       []salary.CalculatePeriodRequest
}

func (s *fakeSalaryService) CalculateForCompany(ctx context.Context, companyID string, req salary.CalculatePeriodRequest) (salary.BatchCalculateResult, error) {
	s.calculated = append(s.calculated, req)
	return salary.BatchCalculateResult{}, nil
}

func (s *fakeSalaryService) ApproveAllForCompany(ctx context.Context, companyID string, req salary.CalculatePeriodRequest) (int, error) {
	s.approved = append(s.approved, req)
	return 0, nil
}

func (s *fakeSalaryService) MarkPaidForCompany(ctx context.Context, companyID string, req salary.CalculatePeriodRequest) (salary.MarkPaidResult, error) {
	s.paid = append(s.paid, req)
	return salary.MarkPaidResult{}, nil
}

func newSweepService(settings automation.Settings) (*AutomationServiceImpl, *fakeSalaryService) {
	salarySvc := &fakeSalaryService{}
	svc := &AutomationServiceImpl{
		settingsRepo:  &fakeSettingsRepo{enabled: []automation.Settings{settings}},
		salaryService: salarySvc,
	}
	return svc, salarySvc
}

func TestMatchesDay(t *testing.T) {
	cases := []struct {
		name       string
		today      time.Time
		configured int
		want       bool
	}{
		{
			name:       "exact match",
			today:      time.Date(2026, 3, 25, 10, 0, 0, 0, time.UTC),
			configured: 25,
			want:       true,
		},
		{
			name:       "no match",
			today:      time.Date(2026, 3, 24, 10, 0, 0, 0, time.UTC),
			configured: 25,
			want:       false,
		},
		{
			name:       "day 31 clamps to end of february",
			today:      time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC),
			configured: 31,
			want:       true,
		},
		{
			name:       "day 31 clamps to end of april",
			today:      time.Date(2026, 4, 30, 10, 0, 0, 0, time.UTC),
			configured: 31,
			want:       true,
		},
		{
			name:       "clamped day does not fire early",
			today:      time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC),
			configured: 31,
			want:       false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchesDay(tc.today, tc.configured))
		})
	}
}

func TestSweep_PaymentTargetsPreviousMonth(t *testing.T) {
	svc, salarySvc := newSweepService(automation.Settings{
		CompanyID: "company-1", Enabled: true,
		CalculationDate: 25, ApprovalDate: 27, PaymentDate: 31,
		AutoApprove: true,
	})

	// March 31: naive month arithmetic lands on "February 31" and
	// normalizes back into March.
	require.NoError(t, svc.sweep(context.Background(), time.Date(2026, 3, 31, 2, 0, 0, 0, time.UTC)))

	require.Len(t, salarySvc.paid, 1)
	assert.Equal(t, 2026, salarySvc.paid[0].Year)
	assert.Equal(t, 2, salarySvc.paid[0].Month)
	assert.Empty(t, salarySvc.calculated)
	assert.Empty(t, salarySvc.approved)
}

func TestSweep_JanuaryPaysDecember(t *testing.T) {
	svc, salarySvc := newSweepService(automation.Settings{
		CompanyID: "company-1", Enabled: true, PaymentDate: 31,
	})

	require.NoError(t, svc.sweep(context.Background(), time.Date(2026, 1, 31, 2, 0, 0, 0, time.UTC)))

	require.Len(t, salarySvc.paid, 1)
	assert.Equal(t, 2025, salarySvc.paid[0].Year)
	assert.Equal(t, 12, salarySvc.paid[0].Month)
}

func TestSweep_StagesGatedByConfiguredDay(t *testing.T) {
	svc, salarySvc := newSweepService(automation.Settings{
		CompanyID: "company-1", Enabled: true,
		CalculationDate: 25, ApprovalDate: 27, PaymentDate: 10,
		AutoApprove: true,
	})

	require.NoError(t, svc.sweep(context.Background(), time.Date(2026, 3, 25, 2, 0, 0, 0, time.UTC)))

	require.Len(t, salarySvc.calculated, 1)
	assert.Equal(t, 2026, salarySvc.calculated[0].Year)
	assert.Equal(t, 3, salarySvc.calculated[0].Month)
	assert.Empty(t, salarySvc.approved)
	assert.Empty(t, salarySvc.paid)
}
