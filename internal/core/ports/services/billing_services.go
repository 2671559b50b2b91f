package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// Authorization is the result of a purchasing power check. Shortfall is zero
// when approved.
type Authorization struct {
	Approved  bool
	Shortfall decimal.Decimal
}

// BillingSvcFacade resolves which account pays for a user's shipments and
// answers advisory funding checks. The binding check happens inside the
// ledger debit transaction; Authorize exists for pre-flight validation and
// read-only surfaces.
type BillingSvcFacade interface {
	// ResolveBillingAccount returns the user's organization account when the
	// user belongs to one, else the user's own account.
	ResolveBillingAccount(ctx context.Context, user *domain.User) (*domain.Account, error)

	// ResolveBillingAccountByUserID loads the user first and then resolves.
	ResolveBillingAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)

	// Authorize reports whether the user's billing account could cover the
	// amount right now.
	Authorize(ctx context.Context, user *domain.User, amount decimal.Decimal) (Authorization, error)

	// PriceFor computes the billed price for a carrier cost using the
	// billing account's markup rule.
	PriceFor(ctx context.Context, user *domain.User, costPrice decimal.Decimal) (decimal.Decimal, *domain.Account, error)

	// UpdateAccountPricing replaces an account's markup rule and credit
	// limit. The balance is never touched through this path.
	UpdateAccountPricing(ctx context.Context, accountID string, markup domain.Markup, creditLimit decimal.Decimal, actorUserID string) (*domain.Account, error)
}
