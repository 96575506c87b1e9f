package salary

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/automation"
	"github.com/shiftpay/payroll-engine-go/internal/domain/finance"
	"github.com/shiftpay/payroll-engine-go/internal/domain/salary"
	"github.com/shiftpay/payroll-engine-go/internal/domain/taxconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedgerSink struct {
	mu      sync.Mutex
	nextID  int
	entries map[string]finance.LedgerEntry
}

func newFakeLedgerSink() *fakeLedgerSink {
	return &fakeLedgerSink{entries: make(map[string]finance.LedgerEntry)}
}

func (l *fakeLedgerSink) Upsert(ctx context.Context, entry finance.LedgerEntry) (finance.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := entry.CompanyID + "|" + entry.ReferenceKey
	if existing, ok := l.entries[key]; ok {
		entry.ID = existing.ID
	} else {
		l.nextID++
		entry.ID = fmt.Sprintf("ledger-%d", l.nextID)
	}
	l.entries[key] = entry
	return entry, nil
}

func (l *fakeLedgerSink) GetByReference(ctx context.Context, companyID string, referenceKey string) (finance.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[companyID+"|"+referenceKey]
	if !ok {
		return finance.LedgerEntry{}, finance.ErrLedgerEntryNotFound
	}
	return entry, nil
}

func (l *fakeLedgerSink) all() []finance.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]finance.LedgerEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		out = append(out, entry)
	}
	return out
}

func newWorkflowService(settings *automation.Settings) (*SalaryServiceImpl, *fakeSalaryRepo, *fakeLedgerSink) {
	repo := newFakeSalaryRepo()
	ledger := newFakeLedgerSink()
	svc := &SalaryServiceImpl{
		salaryRepo:   repo,
		employeeRepo: &fakeEmployeeRepo{},
		taxRepo:      &fakeTaxRepo{},
		settingsRepo: &fakeSettingsRepo{settings: settings},
		ledger:       ledger,
		locks:        newPeriodLocks(),
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return fn(nil)
		},
	}
	return svc, repo, ledger
}

func authedContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("workflow-test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"company_id": companyID, "type": "access"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func seedPeriod(t *testing.T, repo *fakeSalaryRepo, status salary.Status) salary.SalaryPeriod {
	t.Helper()
	period, err := repo.Create(context.Background(), salary.SalaryPeriod{
		CompanyID:   "company-1",
		EmployeeID:  "employee-1",
		PeriodStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		TotalPay:    dec(5000),
		NetPay:      dec(4500),
		Status:      status,
	})
	require.NoError(t, err)
	return period
}

func TestApproveSalary_EmitsPendingLedgerEntry(t *testing.T) {
	svc, repo, ledger := newWorkflowService(&automation.Settings{CompanyID: "company-1", PaymentDate: 10})
	period := seedPeriod(t, repo, salary.StatusDraft)
	ctx := authedContext(t, "company-1")

	resp, err := svc.ApproveSalary(ctx, period.ID, salary.ApproveSalaryRequest{})

	require.NoError(t, err)
	assert.Equal(t, salary.StatusApproved, resp.Status)

	entries := ledger.all()
	require.Len(t, entries, 1)
	assert.Equal(t, period.ID, entries[0].ReferenceKey)
	assert.Equal(t, finance.EntryStatusPending, entries[0].Status)
	assert.True(t, entries[0].DueDate.Equal(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)),
		"got %s", entries[0].DueDate)
}

func TestApproveSalary_RetryKeepsSingleLedgerEntry(t *testing.T) {
	svc, repo, ledger := newWorkflowService(&automation.Settings{CompanyID: "company-1", PaymentDate: 10})
	period := seedPeriod(t, repo, salary.StatusDraft)
	ctx := authedContext(t, "company-1")

	_, err := svc.ApproveSalary(ctx, period.ID, salary.ApproveSalaryRequest{})
	require.NoError(t, err)

	// A retry succeeds and lands on the same ledger row.
	resp, err := svc.ApproveSalary(ctx, period.ID, salary.ApproveSalaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, salary.StatusApproved, resp.Status)

	entries := ledger.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger-1", entries[0].ID)
}

func TestApproveSalary_TerminalStatesRejected(t *testing.T) {
	for _, status := range []salary.Status{salary.StatusPaid, salary.StatusCanceled} {
		svc, repo, ledger := newWorkflowService(nil)
		period := seedPeriod(t, repo, status)
		ctx := authedContext(t, "company-1")

		_, err := svc.ApproveSalary(ctx, period.ID, salary.ApproveSalaryRequest{})

		assert.ErrorIs(t, err, salary.ErrInvalidStateTransition, "from %s", status)
		assert.Empty(t, ledger.all())

		stored, err := repo.GetByID(context.Background(), period.ID, "company-1")
		require.NoError(t, err)
		assert.Equal(t, status, stored.Status)
	}
}

func TestRejectSalary_CancelsWithReason(t *testing.T) {
	svc, repo, ledger := newWorkflowService(nil)
	period := seedPeriod(t, repo, salary.StatusDraft)
	ctx := authedContext(t, "company-1")

	resp, err := svc.RejectSalary(ctx, period.ID, salary.RejectSalaryRequest{Reason: "Incomplete hours"})

	require.NoError(t, err)
	assert.Equal(t, salary.StatusCanceled, resp.Status)
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, "Rejected: Incomplete hours")
	assert.Empty(t, ledger.all())
}

func TestRejectSalary_PaidPeriodRejected(t *testing.T) {
	svc, repo, _ := newWorkflowService(nil)
	period := seedPeriod(t, repo, salary.StatusPaid)
	ctx := authedContext(t, "company-1")

	_, err := svc.RejectSalary(ctx, period.ID, salary.RejectSalaryRequest{Reason: "too late"})

	assert.ErrorIs(t, err, salary.ErrInvalidStateTransition)
}

func TestMarkSalariesPaid_EmptySelection(t *testing.T) {
	svc, _, _ := newWorkflowService(nil)
	ctx := authedContext(t, "company-1")

	_, err := svc.MarkSalariesPaid(ctx, salary.MarkPaidRequest{})

	assert.ErrorIs(t, err, salary.ErrNoSalariesSelected)
}

func TestMarkSalariesPaid_DraftRejected(t *testing.T) {
	svc, repo, ledger := newWorkflowService(nil)
	period := seedPeriod(t, repo, salary.StatusDraft)
	ctx := authedContext(t, "company-1")

	_, err := svc.MarkSalariesPaid(ctx, salary.MarkPaidRequest{SalaryIDs: []string{period.ID}})

	assert.ErrorIs(t, err, salary.ErrInvalidStateTransition)
	assert.Empty(t, ledger.all())
}

func TestMarkSalariesPaid_DefaultsDueDateFromSettings(t *testing.T) {
	svc, repo, ledger := newWorkflowService(&automation.Settings{CompanyID: "company-1", PaymentDate: 10})
	period := seedPeriod(t, repo, salary.StatusApproved)
	ctx := authedContext(t, "company-1")

	result, err := svc.MarkSalariesPaid(ctx, salary.MarkPaidRequest{SalaryIDs: []string{period.ID}})

	require.NoError(t, err)
	assert.Equal(t, 1, result.PaidCount)
	require.Len(t, result.LedgerEntryIDs, 1)

	wantDate := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	stored, err := repo.GetByID(context.Background(), period.ID, "company-1")
	require.NoError(t, err)
	assert.Equal(t, salary.StatusPaid, stored.Status)
	require.NotNil(t, stored.PaymentDate)
	assert.True(t, stored.PaymentDate.Equal(wantDate), "got %s", stored.PaymentDate)
	require.NotNil(t, stored.Notes)
	assert.Contains(t, *stored.Notes, "Paid 2026-02-10 via Bank Transfer")

	entries := ledger.all()
	require.Len(t, entries, 1)
	assert.Equal(t, finance.EntryStatusCompleted, entries[0].Status)
	assert.True(t, entries[0].TransactionDate.Equal(wantDate))
	assert.Contains(t, entries[0].Description, "paid via Bank Transfer")
	assert.Nil(t, entries[0].BankAccount)
}

func TestMarkSalariesPaid_ExplicitDateAndMethod(t *testing.T) {
	svc, repo, ledger := newWorkflowService(&automation.Settings{CompanyID: "company-1", PaymentDate: 10})
	period := seedPeriod(t, repo, salary.StatusApproved)
	ctx := authedContext(t, "company-1")

	date := "2026-02-15"
	method := "Check"
	account := "IL-001"
	_, err := svc.MarkSalariesPaid(ctx, salary.MarkPaidRequest{
		SalaryIDs:     []string{period.ID},
		PaymentDate:   &date,
		PaymentMethod: &method,
		BankAccount:   &account,
	})

	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), period.ID, "company-1")
	require.NoError(t, err)
	require.NotNil(t, stored.PaymentDate)
	assert.True(t, stored.PaymentDate.Equal(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, stored.Notes)
	assert.Contains(t, *stored.Notes, "Paid 2026-02-15 via Check")

	entries := ledger.all()
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].BankAccount)
	assert.Equal(t, "IL-001", *entries[0].BankAccount)
	assert.Contains(t, entries[0].Description, "paid via Check")
}

func TestMarkSalariesPaid_ReusesApprovalLedgerEntry(t *testing.T) {
	svc, repo, ledger := newWorkflowService(&automation.Settings{CompanyID: "company-1", PaymentDate: 10})
	period := seedPeriod(t, repo, salary.StatusDraft)
	ctx := authedContext(t, "company-1")

	_, err := svc.ApproveSalary(ctx, period.ID, salary.ApproveSalaryRequest{})
	require.NoError(t, err)

	result, err := svc.MarkSalariesPaid(ctx, salary.MarkPaidRequest{SalaryIDs: []string{period.ID}})
	require.NoError(t, err)

	entries := ledger.all()
	require.Len(t, entries, 1)
	assert.Equal(t, finance.EntryStatusCompleted, entries[0].Status)
	assert.Equal(t, []string{entries[0].ID}, result.LedgerEntryIDs)
}

func TestDueDateFor(t *testing.T) {
	cases := []struct {
		name       string
		periodEnd  time.Time
		paymentDay int
		want       time.Time
	}{
		{
			name:       "configured day in following month",
			periodEnd:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			paymentDay: 5,
			want:       time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day clamped to short month",
			periodEnd:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			paymentDay: 31,
			want:       time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "first of month",
			periodEnd:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			paymentDay: 1,
			want:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			period := salary.SalaryPeriod{PeriodEnd: tc.periodEnd}
			settings := automation.Settings{PaymentDate: tc.paymentDay}

			got := dueDateFor(period, settings)

			assert.True(t, got.Equal(tc.want), "got %s want %s", got, tc.want)
		})
	}
}

func TestLedgerDescription(t *testing.T) {
	period := salary.SalaryPeriod{
		PeriodStart:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalPay:     dec(5000),
		Bonus:        dec(250),
		TaxDeduction: dec(525),
		OtherDeductions: []salary.Deduction{
			{Description: "Health", Amount: dec(100)},
		},
		NetPay: dec(4625),
	}

	got := ledgerDescription(period)

	assert.Equal(t, "Salary 2026-01: gross 5000.00, bonus 250.00, tax 525.00, deductions 100.00, net 4625.00", got)
}

func TestLedgerEntryFor(t *testing.T) {
	svc := &SalaryServiceImpl{
		settingsRepo: &fakeSettingsRepo{},
		employeeRepo: &fakeEmployeeRepo{},
		taxRepo: &fakeTaxRepo{active: &taxconfig.TaxConfig{
			ID:       "tax-1",
			Currency: "ILS",
		}},
	}

	period := salary.SalaryPeriod{
		ID:          "period-1",
		CompanyID:   "company-1",
		EmployeeID:  "employee-1",
		PeriodStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		TotalPay:    dec(5000),
		NetPay:      dec(4500),
	}
	dueDate := time.Now().UTC().AddDate(0, 0, 15)

	entry := svc.ledgerEntryFor(context.Background(), period, finance.EntryStatusPending, dueDate)

	// Re-emission for the same period must hit the same ledger row.
	assert.Equal(t, "period-1", entry.ReferenceKey)
	assert.Equal(t, "company-1", entry.CompanyID)
	assert.Equal(t, "employee-1", entry.PartyID)
	assert.Equal(t, "Expense", entry.TransactionType)
	assert.Equal(t, "Payroll", entry.Category)
	assert.Equal(t, finance.EntryStatusPending, entry.Status)
	assert.Equal(t, "ILS", entry.Currency)
	assert.Equal(t, finance.PaymentTermsNet30, entry.PaymentTerms)
	assert.True(t, entry.Amount.Equal(dec(4500)))
	assert.True(t, entry.DueDate.Equal(dueDate))
}

func TestLedgerEntryFor_CurrencyFallsBackToUSD(t *testing.T) {
	svc := &SalaryServiceImpl{
		settingsRepo: &fakeSettingsRepo{},
		employeeRepo: &fakeEmployeeRepo{},
		taxRepo:      &fakeTaxRepo{},
	}

	period := salary.SalaryPeriod{ID: "period-1", CompanyID: "company-1", EmployeeID: "employee-1"}

	entry := svc.ledgerEntryFor(context.Background(), period, finance.EntryStatusPending, time.Now().UTC())

	assert.Equal(t, "USD", entry.Currency)
}

func TestAppendNote(t *testing.T) {
	got := appendNote(nil, "Rejected: incomplete hours")
	require.NotNil(t, got)
	assert.Equal(t, "Rejected: incomplete hours", *got)

	existing := "Approved by finance"
	got = appendNote(&existing, "Rejected: incomplete hours")
	require.NotNil(t, got)
	assert.Equal(t, "Approved by finance\nRejected: incomplete hours", *got)

	empty := ""
	got = appendNote(&empty, "note")
	require.NotNil(t, got)
	assert.Equal(t, "note", *got)
}
