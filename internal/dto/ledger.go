package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// AdjustBalanceRequest is a staff-only manual ledger entry. Exactly one of
// AccountID or UserID must be set; a user ID resolves to the user's billing
// account first.
type AdjustBalanceRequest struct {
	AccountID   string               `json:"accountID"`
	UserID      string               `json:"userID"`
	EntryType   domain.EntryType     `json:"entryType" binding:"required,oneof=CREDIT DEBIT"`
	Category    domain.EntryCategory `json:"category" binding:"required,oneof=TOP_UP REFUND ADJUSTMENT"`
	Amount      decimal.Decimal      `json:"amount" binding:"required"`
	Description string               `json:"description" binding:"required"`
}

// LedgerEntryResponse mirrors domain.LedgerEntry.
type LedgerEntryResponse struct {
	EntryID      string               `json:"entryID"`
	AccountID    string               `json:"accountID"`
	EntryType    domain.EntryType     `json:"entryType"`
	Category     domain.EntryCategory `json:"category"`
	Amount       decimal.Decimal      `json:"amount"`
	BalanceAfter decimal.Decimal      `json:"balanceAfter"`
	Description  string               `json:"description"`
	Reference    string               `json:"reference,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	CreatedBy    string               `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:      e.EntryID,
		AccountID:    e.AccountID,
		EntryType:    e.EntryType,
		Category:     e.Category,
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Description:  e.Description,
		Reference:    e.Reference,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}

// ListLedgerParams defines query parameters for listing ledger entries.
type ListLedgerParams struct {
	AccountID string  `form:"accountId"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerResponse wraps a page of ledger entries.
type ListLedgerResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// UpdateAccountPricingRequest replaces an account's markup rule and credit
// limit. Staff only.
type UpdateAccountPricingRequest struct {
	Markup      MarkupRequest   `json:"markup" binding:"required"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

// AccountResponse mirrors domain.Account.
type AccountResponse struct {
	AccountID    string                  `json:"accountID"`
	OwnerType    domain.AccountOwnerType `json:"ownerType"`
	Name         string                  `json:"name"`
	CurrencyCode string                  `json:"currencyCode"`
	Balance      decimal.Decimal         `json:"balance"`
	CreditLimit  decimal.Decimal         `json:"creditLimit"`
	Markup       domain.Markup           `json:"markup"`
	IsActive     bool                    `json:"isActive"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    acc.AccountID,
		OwnerType:    acc.OwnerType,
		Name:         acc.Name,
		CurrencyCode: acc.CurrencyCode,
		Balance:      acc.Balance,
		CreditLimit:  acc.CreditLimit,
		Markup:       acc.Markup,
		IsActive:     acc.IsActive,
		CreatedAt:    acc.CreatedAt,
	}
}

// BalanceResponse reports an account's balance and purchasing power.
type BalanceResponse struct {
	AccountID      string          `json:"accountID"`
	Balance        decimal.Decimal `json:"balance"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	AvailableFunds decimal.Decimal `json:"availableFunds"`
}

// ToBalanceResponse converts an account to a BalanceResponse.
func ToBalanceResponse(acc *domain.Account) BalanceResponse {
	return BalanceResponse{
		AccountID:      acc.AccountID,
		Balance:        acc.Balance,
		CreditLimit:    acc.CreditLimit,
		AvailableFunds: acc.AvailableFunds(),
	}
}
