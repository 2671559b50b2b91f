package services

import (
	"context"
	"time"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
)

// UserSvcFacade manages users and role checks.
type UserSvcFacade interface {
	// Register creates a user together with their personal billing account.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Authenticate verifies credentials and returns the user.
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// RequireRole loads the user and fails with ErrForbidden unless their
	// role is one of the given roles.
	RequireRole(ctx context.Context, userID string, roles ...domain.UserRole) (*domain.User, error)
}

// TokenSvcFacade issues bearer tokens for authenticated users.
type TokenSvcFacade interface {
	// IssueToken creates a signed token for the user.
	IssueToken(user *domain.User) (token string, expiresAt time.Time, err error)
}
