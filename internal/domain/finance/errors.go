package finance

import "errors"

var ErrLedgerEntryNotFound = errors.New("ledger entry not found")
