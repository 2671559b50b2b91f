package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// AccountReader defines read operations for billing account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// AccountWriter defines write operations for account data. None of these
// touch the balance column; the balance is written only by the ledger
// repository while appending an entry.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdatePricing updates the markup rule and credit limit of an account.
	UpdatePricing(ctx context.Context, accountID string, markup domain.Markup, creditLimit decimal.Decimal, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside ledger transactions.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account and locks its row for
	// update within the given transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
