package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a ledger entry increases or decreases the
// account balance.
type EntryType string

const (
	EntryCredit EntryType = "CREDIT"
	EntryDebit  EntryType = "DEBIT"
)

// EntryCategory classifies why a ledger entry exists.
type EntryCategory string

const (
	CategoryShipmentFee EntryCategory = "SHIPMENT_FEE"
	CategoryTopUp       EntryCategory = "TOP_UP"
	CategoryRefund      EntryCategory = "REFUND"
	CategoryAdjustment  EntryCategory = "ADJUSTMENT"
)

// LedgerEntry is one immutable balance-affecting record for an account.
// Entries are never updated or deleted after insert; corrections are new
// compensating entries. For an account's entries ordered by CreatedAt,
// BalanceAfter forms a chain: each entry's snapshot equals the previous one
// plus the signed amount, and the newest snapshot equals the account balance.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	EntryType    EntryType       `json:"entryType"`
	Category     EntryCategory   `json:"category"`
	Amount       decimal.Decimal `json:"amount"` // always positive
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference,omitempty"` // shipment tracking number when applicable
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// SignedAmount returns the amount with the sign implied by the entry type.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.EntryType == EntryDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}
