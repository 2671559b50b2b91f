package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
)

// AppendEntryParams carries everything needed to append one ledger entry.
type AppendEntryParams struct {
	AccountID   string
	EntryType   domain.EntryType
	Category    domain.EntryCategory
	Amount      decimal.Decimal
	Description string
	Reference   string
	ActorUserID string
}

// LedgerSvcFacade is the only surface through which balances change.
type LedgerSvcFacade interface {
	// Append records one balance-affecting entry. The account's balance and
	// the entry insert are one atomic unit; a failure leaves neither applied.
	Append(ctx context.Context, params AppendEntryParams) (*domain.LedgerEntry, error)

	// AppendDebitGuarded records a DEBIT only if the account's balance plus
	// credit limit covers the amount at the instant of the atomic check.
	// Returns InsufficientFundsError carrying the shortfall otherwise.
	AppendDebitGuarded(ctx context.Context, params AppendEntryParams) (*domain.LedgerEntry, error)

	// ListEntries returns a newest-first page of an account's entries.
	ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListLedgerResponse, error)

	// GetBalance returns the account's current balance.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// FindFeeEntry returns the SHIPMENT_FEE debit recorded for a tracking
	// number on the given account, if any.
	FindFeeEntry(ctx context.Context, accountID string, trackingNumber string) (*domain.LedgerEntry, error)
}
