package services

import (
	"context"
	"errors"
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
	"github.com/swiftparcel/parcel_broker_app/internal/utils"
)

// ErrInvalidCredentials is returned on a failed login attempt. It never says
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

const defaultCurrencyCode = "EUR"

// userService manages users and their personal billing accounts.
type userService struct {
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountWriter
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, accountRepo portsrepo.AccountWriter) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a user together with their personal billing account. New
// users start as clients with a zero balance, zero credit limit and a
// pass-through markup; staff adjust pricing afterwards.
func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	accountID := uuid.NewString()

	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}

	account := domain.Account{
		AccountID:    accountID,
		OwnerType:    domain.OwnerUser,
		Name:         req.Name,
		CurrencyCode: currency,
		Balance:      decimal.Zero,
		CreditLimit:  decimal.Zero,
		Markup: domain.Markup{
			Type:            domain.MarkupPercentage,
			PercentageValue: decimal.Zero,
			FlatValue:       decimal.Zero,
		},
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to create account for new user", slog.String("error", err.Error()))
		return nil, err
	}

	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleClient,
		AccountID:    accountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save new user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", userID), slog.String("account_id", accountID))
	return &user, nil
}

// Authenticate verifies credentials and returns the user.
func (s *userService) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// RequireRole loads the user and fails with ErrForbidden unless their role is
// one of the given roles.
func (s *userService) RequireRole(ctx context.Context, userID string, roles ...domain.UserRole) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: role %s may not perform this action", apperrors.ErrForbidden, user.Role)
}
