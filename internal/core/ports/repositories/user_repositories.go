package repositories

import (
	"context"
	"time"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, for authentication.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsersByOrganization retrieves all members of an organization.
	ListUsersByOrganization(ctx context.Context, organizationID string) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// SetOrganization links or unlinks a user's organization membership.
	// Linking is conditional: the update only applies while the user has no
	// other organization, so a concurrent add to a different organization
	// cannot slip through. A zero affected-row count surfaces as ErrConflict.
	SetOrganization(ctx context.Context, userID string, organizationID *string, updatedBy string, now time.Time) error
}

// UserRepositoryFacade combines all user repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
