package repositories

import (
	"context"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// ListEntriesByAccount retrieves a paginated list of entries for an
	// account, newest first, using token-based pagination. It returns the
	// entries, a token for the next page, and an error.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindEntriesByReference retrieves all entries carrying the given
	// reference (shipment tracking number), newest first.
	FindEntriesByReference(ctx context.Context, accountID string, reference string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines the single write operation on the ledger. Entries are
// append-only; there is deliberately no update or delete.
type LedgerWriter interface {
	// AppendEntry atomically inserts the entry and moves the owning
	// account's balance to the entry's BalanceAfter snapshot, computed under
	// a row lock on the account. When enforceFunds is set and the entry is a
	// debit, the append fails with InsufficientFundsError if the locked
	// balance plus credit limit cannot cover the amount; nothing is written
	// in that case. The returned entry carries the computed BalanceAfter.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry, enforceFunds bool) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
