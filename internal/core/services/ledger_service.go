package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portsrepo "github.com/swiftparcel/parcel_broker_app/internal/core/ports/repositories"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
	"github.com/swiftparcel/parcel_broker_app/internal/middleware"
)

// ledgerService is the only write path to account balances. Every balance
// move happens by appending an entry; the repository makes the insert and the
// balance update one atomic unit under a row lock.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) buildEntry(params portssvc.AppendEntryParams) (domain.LedgerEntry, error) {
	if params.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.LedgerEntry{}, fmt.Errorf("%w: entry amount must be positive, got %s", apperrors.ErrValidation, params.Amount.String())
	}
	if params.Description == "" {
		return domain.LedgerEntry{}, fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	}

	return domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   params.AccountID,
		EntryType:   params.EntryType,
		Category:    params.Category,
		Amount:      params.Amount,
		Description: params.Description,
		Reference:   params.Reference,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   params.ActorUserID,
	}, nil
}

// Append records one balance-affecting entry without a funds check. Used for
// credits and staff adjustments, which may push the balance anywhere.
func (s *ledgerService) Append(ctx context.Context, params portssvc.AppendEntryParams) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.buildEntry(params)
	if err != nil {
		return nil, err
	}

	saved, err := s.ledgerRepo.AppendEntry(ctx, entry, false)
	if err != nil {
		logger.Error("Failed to append ledger entry", slog.String("error", err.Error()), slog.String("account_id", params.AccountID))
		return nil, err
	}

	logger.Info("Ledger entry appended",
		slog.String("entry_id", saved.EntryID),
		slog.String("account_id", saved.AccountID),
		slog.String("entry_type", string(saved.EntryType)),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// AppendDebitGuarded records a DEBIT only if the balance plus credit limit
// covers the amount at the instant of the atomic check inside the repository
// transaction.
func (s *ledgerService) AppendDebitGuarded(ctx context.Context, params portssvc.AppendEntryParams) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if params.EntryType != domain.EntryDebit {
		return nil, fmt.Errorf("%w: guarded append only takes debits", apperrors.ErrValidation)
	}

	entry, err := s.buildEntry(params)
	if err != nil {
		return nil, err
	}

	saved, err := s.ledgerRepo.AppendEntry(ctx, entry, true)
	if err != nil {
		logger.Warn("Guarded debit rejected", slog.String("error", err.Error()), slog.String("account_id", params.AccountID))
		return nil, err
	}

	logger.Info("Guarded debit appended",
		slog.String("entry_id", saved.EntryID),
		slog.String("account_id", saved.AccountID),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// ListEntries returns a newest-first page of an account's entries.
func (s *ledgerService) ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListLedgerResponse, error) {
	entries, next, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, limit, nextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListLedgerResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: next,
	}, nil
}

// GetBalance returns the account's current balance.
func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// FindFeeEntry returns the outstanding SHIPMENT_FEE debit for a tracking
// number on the given account. The fee is netted against REFUND credits
// carrying the same reference, so a fee that was fully reversed (e.g. by a
// failed carrier booking) counts as never charged. Returns ErrNotFound when
// no un-refunded fee remains; the returned entry's amount is the outstanding
// net.
func (s *ledgerService) FindFeeEntry(ctx context.Context, accountID string, trackingNumber string) (*domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindEntriesByReference(ctx, accountID, trackingNumber)
	if err != nil {
		return nil, err
	}

	var fee *domain.LedgerEntry
	outstanding := decimal.Zero
	for i := range entries {
		switch {
		case entries[i].Category == domain.CategoryShipmentFee && entries[i].EntryType == domain.EntryDebit:
			fee = &entries[i]
			outstanding = outstanding.Add(entries[i].Amount)
		case entries[i].Category == domain.CategoryRefund && entries[i].EntryType == domain.EntryCredit:
			outstanding = outstanding.Sub(entries[i].Amount)
		}
	}
	if fee == nil || outstanding.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrNotFound
	}

	net := *fee
	net.Amount = outstanding
	return &net, nil
}
