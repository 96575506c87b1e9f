package finance

import "context"

// LedgerSink receives expense records from the payroll workflow. Upsert is
// keyed on (companyID, referenceKey) so repeated emissions for the same
// salary period collapse into one entry.
type LedgerSink interface {
	Upsert(ctx context.Context, entry LedgerEntry) (LedgerEntry, error)
	GetByReference(ctx context.Context, companyID string, referenceKey string) (LedgerEntry, error)
}
