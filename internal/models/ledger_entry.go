package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a ledger entry row is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// LedgerEntry represents one row of the append-only ledger_entries table.
// Rows are insert-only; there is no update or delete path for this model.
type LedgerEntry struct {
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	EntryType    EntryType       `db:"entry_type"`
	Category     string          `db:"category"`
	Amount       decimal.Decimal `db:"amount"` // positive value
	BalanceAfter decimal.Decimal `db:"balance_after"`
	Description  string          `db:"description"`
	Reference    string          `db:"reference"` // nullable, shipment tracking number
	CreatedAt    time.Time       `db:"created_at"`
	CreatedBy    string          `db:"created_by"`
}
