package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portsrepo "github.com/swiftparcel/parcel_broker_app/internal/core/ports/repositories"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/middleware"
)

// billingService resolves which account pays for a user's shipments. Members
// of an organization bill against the pooled organization account; everyone
// else bills against their own.
type billingService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserReader
	orgRepo     portsrepo.OrganizationReader
}

// NewBillingService creates a new BillingService.
func NewBillingService(accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserReader, orgRepo portsrepo.OrganizationReader) portssvc.BillingSvcFacade {
	return &billingService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		orgRepo:     orgRepo,
	}
}

// Ensure billingService implements the portssvc.BillingSvcFacade interface
var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// ResolveBillingAccount returns the user's organization account when the user
// belongs to one, else the user's own account. Membership is read at call
// time: removing a member changes where the next resolution lands, never
// past ledger entries.
func (s *billingService) ResolveBillingAccount(ctx context.Context, user *domain.User) (*domain.Account, error) {
	accountID := user.AccountID
	if user.OrganizationID != nil {
		org, err := s.orgRepo.FindOrganizationByID(ctx, *user.OrganizationID)
		if err != nil {
			return nil, err
		}
		accountID = org.AccountID
	}
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ResolveBillingAccountByUserID loads the user first and then resolves.
func (s *billingService) ResolveBillingAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ResolveBillingAccount(ctx, user)
}

// Authorize reports whether the user's billing account could cover the amount
// right now. Advisory only: the binding check runs inside the ledger debit
// transaction under the account row lock.
func (s *billingService) Authorize(ctx context.Context, user *domain.User, amount decimal.Decimal) (portssvc.Authorization, error) {
	account, err := s.ResolveBillingAccount(ctx, user)
	if err != nil {
		return portssvc.Authorization{}, err
	}

	available := account.AvailableFunds()
	if available.LessThan(amount) {
		return portssvc.Authorization{
			Approved:  false,
			Shortfall: amount.Sub(available),
		}, nil
	}
	return portssvc.Authorization{Approved: true, Shortfall: decimal.Zero}, nil
}

// PriceFor computes the billed price for a carrier cost using the billing
// account's markup rule. Returns the account alongside so callers can debit
// the same account they priced against.
func (s *billingService) PriceFor(ctx context.Context, user *domain.User, costPrice decimal.Decimal) (decimal.Decimal, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.ResolveBillingAccount(ctx, user)
	if err != nil {
		return decimal.Zero, nil, err
	}

	price, err := domain.ComputePrice(costPrice, account.Markup)
	if err != nil {
		logger.Warn("Price computation failed",
			slog.String("account_id", account.AccountID),
			slog.String("cost_price", costPrice.String()),
			slog.String("error", err.Error()))
		return decimal.Zero, nil, err
	}
	return price, account, nil
}

// UpdateAccountPricing replaces an account's markup rule and credit limit.
// The balance is untouched; only ledger appends move it.
func (s *billingService) UpdateAccountPricing(ctx context.Context, accountID string, markup domain.Markup, creditLimit decimal.Decimal, actorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if creditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit must not be negative", apperrors.ErrValidation)
	}
	if _, err := domain.ComputePrice(decimal.NewFromInt(1), markup); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdatePricing(ctx, accountID, markup, creditLimit, actorUserID, now); err != nil {
		return nil, err
	}

	logger.Info("Account pricing updated",
		slog.String("account_id", accountID),
		slog.String("markup_type", string(markup.Type)))
	return s.accountRepo.FindAccountByID(ctx, accountID)
}
