package pgsql

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

func ledgerAccount(balance, creditLimit int64) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		Balance:     decimal.NewFromInt(balance),
		CreditLimit: decimal.NewFromInt(creditLimit),
	}
}

func TestNextBalanceSnapshot_ChainInvariant(t *testing.T) {
	account := ledgerAccount(0, 0)

	entries := []domain.LedgerEntry{
		{AccountID: account.AccountID, EntryType: domain.EntryCredit, Category: domain.CategoryTopUp, Amount: decimal.NewFromInt(100)},
		{AccountID: account.AccountID, EntryType: domain.EntryDebit, Category: domain.CategoryShipmentFee, Amount: decimal.NewFromInt(35)},
		{AccountID: account.AccountID, EntryType: domain.EntryCredit, Category: domain.CategoryRefund, Amount: decimal.NewFromInt(35)},
		{AccountID: account.AccountID, EntryType: domain.EntryDebit, Category: domain.CategoryAdjustment, Amount: decimal.NewFromFloat(12.5)},
	}

	prev := account.Balance
	for i := range entries {
		snapshot, err := nextBalanceSnapshot(account, entries[i], false)
		require.NoError(t, err)
		require.True(t, snapshot.Equal(prev.Add(entries[i].SignedAmount())),
			"entry %d: snapshot %s != previous %s + signed %s", i, snapshot, prev, entries[i].SignedAmount())

		entries[i].BalanceAfter = snapshot
		account.Balance = snapshot
		prev = snapshot
	}

	// The latest snapshot is the account balance.
	require.True(t, account.Balance.Equal(entries[len(entries)-1].BalanceAfter))
	require.True(t, account.Balance.Equal(decimal.NewFromFloat(87.5)))
}

func TestNextBalanceSnapshot_GuardedDebitRejectsShortfall(t *testing.T) {
	account := ledgerAccount(20, 30)

	entry := domain.LedgerEntry{
		AccountID: account.AccountID,
		EntryType: domain.EntryDebit,
		Category:  domain.CategoryShipmentFee,
		Amount:    decimal.NewFromInt(60),
	}

	_, err := nextBalanceSnapshot(account, entry, true)

	var fundsErr *apperrors.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	require.Equal(t, account.AccountID, fundsErr.AccountID)
	require.True(t, fundsErr.Shortfall.Equal(decimal.NewFromInt(10)))
}

func TestNextBalanceSnapshot_GuardIgnoresCredits(t *testing.T) {
	account := ledgerAccount(-40, 0)

	entry := domain.LedgerEntry{
		AccountID: account.AccountID,
		EntryType: domain.EntryCredit,
		Category:  domain.CategoryTopUp,
		Amount:    decimal.NewFromInt(50),
	}

	snapshot, err := nextBalanceSnapshot(account, entry, true)

	require.NoError(t, err)
	require.True(t, snapshot.Equal(decimal.NewFromInt(10)))
}

// A declined debit, a top-up and a retry: the declined attempt writes
// nothing, the retry lands against the topped-up balance.
func TestNextBalanceSnapshot_TopUpThenRetry(t *testing.T) {
	account := ledgerAccount(20, 30)
	debit := domain.LedgerEntry{
		AccountID: account.AccountID,
		EntryType: domain.EntryDebit,
		Category:  domain.CategoryShipmentFee,
		Amount:    decimal.NewFromInt(60),
	}

	_, err := nextBalanceSnapshot(account, debit, true)
	var fundsErr *apperrors.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	require.True(t, account.Balance.Equal(decimal.NewFromInt(20)))

	topUp := domain.LedgerEntry{
		AccountID: account.AccountID,
		EntryType: domain.EntryCredit,
		Category:  domain.CategoryTopUp,
		Amount:    decimal.NewFromInt(50),
	}
	snapshot, err := nextBalanceSnapshot(account, topUp, false)
	require.NoError(t, err)
	account.Balance = snapshot

	snapshot, err = nextBalanceSnapshot(account, debit, true)
	require.NoError(t, err)
	require.True(t, snapshot.Equal(decimal.NewFromInt(10)))
}
