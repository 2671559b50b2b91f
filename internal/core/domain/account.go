package domain

import (
	"github.com/shopspring/decimal"
)

// AccountOwnerType indicates whether an account belongs to a single user or
// is pooled by an organization.
type AccountOwnerType string

const (
	OwnerUser         AccountOwnerType = "USER"
	OwnerOrganization AccountOwnerType = "ORGANIZATION"
)

// Account is a billing account. A negative balance means the owner owes the
// brokerage; AvailableFunds extends the balance by the account's credit limit.
//
// The balance column is written exclusively by the ledger repository as part
// of appending a ledger entry. No other code path may assign to it.
type Account struct {
	AccountID    string           `json:"accountID"`
	OwnerType    AccountOwnerType `json:"ownerType"`
	Name         string           `json:"name"`
	CurrencyCode string           `json:"currencyCode"`
	Balance      decimal.Decimal  `json:"balance"`
	CreditLimit  decimal.Decimal  `json:"creditLimit"` // >= 0
	Markup       Markup           `json:"markup"`
	IsActive     bool             `json:"isActive"`
	AuditFields
}

// AvailableFunds is the purchasing power of the account: balance plus credit
// limit. Always computed, never stored.
func (a Account) AvailableFunds() decimal.Decimal {
	return a.Balance.Add(a.CreditLimit)
}
