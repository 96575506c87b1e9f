package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/finance"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) finance.LedgerSink {
	return &ledgerRepository{db: db}
}

const ledgerColumns = `id, company_id, transaction_date, transaction_type, category, amount,
	currency, description, status, party_id, bank_account, payment_terms, due_date, reference_key,
	created_at, updated_at`

// Upsert is keyed on (company_id, reference_key) so re-approval of the
// same salary period updates the existing entry.
func (r *ledgerRepository) Upsert(ctx context.Context, entry finance.LedgerEntry) (finance.LedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO ledger_entries (company_id, transaction_date, transaction_type, category, amount,
			currency, description, status, party_id, bank_account, payment_terms, due_date, reference_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id, reference_key) DO UPDATE SET
			transaction_date = EXCLUDED.transaction_date,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			bank_account = COALESCE(EXCLUDED.bank_account, ledger_entries.bank_account),
			payment_terms = EXCLUDED.payment_terms,
			due_date = EXCLUDED.due_date,
			updated_at = NOW()
		RETURNING %s
	`, ledgerColumns)

	var saved finance.LedgerEntry
	err := q.QueryRow(ctx, query,
		entry.CompanyID, entry.TransactionDate, entry.TransactionType, entry.Category, entry.Amount,
		entry.Currency, entry.Description, entry.Status, entry.PartyID, entry.BankAccount,
		entry.PaymentTerms, entry.DueDate, entry.ReferenceKey,
	).Scan(
		&saved.ID, &saved.CompanyID, &saved.TransactionDate, &saved.TransactionType, &saved.Category, &saved.Amount,
		&saved.Currency, &saved.Description, &saved.Status, &saved.PartyID, &saved.BankAccount,
		&saved.PaymentTerms, &saved.DueDate, &saved.ReferenceKey, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return finance.LedgerEntry{}, fmt.Errorf("failed to upsert ledger entry: %w", err)
	}

	return saved, nil
}

func (r *ledgerRepository) GetByReference(ctx context.Context, companyID string, referenceKey string) (finance.LedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM ledger_entries
		WHERE company_id = $1 AND reference_key = $2
	`, ledgerColumns)

	var entry finance.LedgerEntry
	err := q.QueryRow(ctx, query, companyID, referenceKey).Scan(
		&entry.ID, &entry.CompanyID, &entry.TransactionDate, &entry.TransactionType, &entry.Category, &entry.Amount,
		&entry.Currency, &entry.Description, &entry.Status, &entry.PartyID, &entry.BankAccount,
		&entry.PaymentTerms, &entry.DueDate, &entry.ReferenceKey, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return finance.LedgerEntry{}, finance.ErrLedgerEntryNotFound
		}
		return finance.LedgerEntry{}, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return entry, nil
}
