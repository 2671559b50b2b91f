package models

import (
	"github.com/shopspring/decimal"
)

// AccountOwnerType mirrors the domain owner type for the accounts table.
type AccountOwnerType string

const (
	OwnerUser         AccountOwnerType = "USER"
	OwnerOrganization AccountOwnerType = "ORGANIZATION"
)

// Account represents a billing account row. The markup configuration is
// flattened into three columns so it can be updated atomically with a single
// UPDATE alongside credit_limit.
type Account struct {
	AccountID        string           `db:"account_id"`
	OwnerType        AccountOwnerType `db:"owner_type"`
	Name             string           `db:"name"`
	CurrencyCode     string           `db:"currency_code"`
	Balance          decimal.Decimal  `db:"balance"` // written only by the ledger repository
	CreditLimit      decimal.Decimal  `db:"credit_limit"`
	MarkupType       string           `db:"markup_type"`
	MarkupPercentage decimal.Decimal  `db:"markup_percentage"`
	MarkupFlat       decimal.Decimal  `db:"markup_flat"`
	IsActive         bool             `db:"is_active"`
	AuditFields
}
