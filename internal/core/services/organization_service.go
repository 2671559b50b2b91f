package services

import (
	"context"
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

// organizationService manages shared billing pools and their membership.
type organizationService struct {
	orgRepo     portsrepo.OrganizationRepositoryFacade
	accountRepo portsrepo.AccountWriter
	userRepo    portsrepo.UserRepositoryFacade
	userSvc     portssvc.UserSvcFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, accountRepo portsrepo.AccountWriter, userRepo portsrepo.UserRepositoryFacade, userSvc portssvc.UserSvcFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{
		orgRepo:     orgRepo,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		userSvc:     userSvc,
	}
}

// Ensure organizationService implements the portssvc.OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// CreateOrganization creates an organization with its pooled account. Staff
// only.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, requestingUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleStaff, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	organizationID := uuid.NewString()
	accountID := uuid.NewString()

	markup := domain.Markup{
		Type:            domain.MarkupPercentage,
		PercentageValue: decimal.Zero,
		FlatValue:       decimal.Zero,
	}
	if req.Markup != nil {
		markup = req.Markup.ToDomainMarkup()
	}

	account := domain.Account{
		AccountID:    accountID,
		OwnerType:    domain.OwnerOrganization,
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		Balance:      decimal.Zero,
		CreditLimit:  req.CreditLimit,
		Markup:       markup,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to create pooled account", slog.String("error", err.Error()))
		return nil, err
	}

	org := domain.Organization{
		OrganizationID: organizationID,
		Name:           req.Name,
		AccountID:      accountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		logger.Error("Failed to save organization", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Organization created", slog.String("organization_id", organizationID), slog.String("account_id", accountID))
	return &org, nil
}

// GetOrganization retrieves an organization. Visible to staff and to its own
// members.
func (s *organizationService) GetOrganization(ctx context.Context, organizationID string, requestingUserID string) (*domain.Organization, error) {
	requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !requester.IsStaff() {
		if requester.OrganizationID == nil || *requester.OrganizationID != organizationID {
			return nil, apperrors.ErrForbidden
		}
	}
	return s.orgRepo.FindOrganizationByID(ctx, organizationID)
}

// AddMember links a user into the organization. A user already belonging to
// a different organization fails with AlreadyMemberError; adding an existing
// member of this organization again is a no-op.
func (s *organizationService) AddMember(ctx context.Context, organizationID string, userID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleStaff, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.OrganizationID != nil {
		if *user.OrganizationID == organizationID {
			return nil // already a member
		}
		return &apperrors.AlreadyMemberError{UserID: userID, OrganizationID: *user.OrganizationID}
	}

	now := time.Now().UTC()
	if err := s.userRepo.SetOrganization(ctx, userID, &organizationID, requestingUserID, now); err != nil {
		// The conditional update lost to a concurrent add: report which
		// organization won.
		if current, findErr := s.userRepo.FindUserByID(ctx, userID); findErr == nil && current.OrganizationID != nil {
			return &apperrors.AlreadyMemberError{UserID: userID, OrganizationID: *current.OrganizationID}
		}
		return err
	}

	logger.Info("Member added to organization", slog.String("organization_id", organizationID), slog.String("member_user_id", userID))
	return nil
}

// RemoveMember unlinks a user. Future billing resolves to the user's own
// account; past ledger entries keep their original account ID.
func (s *organizationService) RemoveMember(ctx context.Context, organizationID string, userID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleStaff, domain.RoleAdmin); err != nil {
		return err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.OrganizationID == nil || *user.OrganizationID != organizationID {
		return apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	if err := s.userRepo.SetOrganization(ctx, userID, nil, requestingUserID, now); err != nil {
		return err
	}

	logger.Info("Member removed from organization", slog.String("organization_id", organizationID), slog.String("member_user_id", userID))
	return nil
}
