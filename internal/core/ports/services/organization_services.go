package services

import (
	"context"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
)

// OrganizationSvcFacade manages shared billing pools.
type OrganizationSvcFacade interface {
	// CreateOrganization creates an organization with its pooled account.
	// Staff only.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, requestingUserID string) (*domain.Organization, error)

	// GetOrganization retrieves an organization.
	GetOrganization(ctx context.Context, organizationID string, requestingUserID string) (*domain.Organization, error)

	// AddMember links a user into the organization. Fails with
	// AlreadyMemberError when the user belongs to a different organization.
	AddMember(ctx context.Context, organizationID string, userID string, requestingUserID string) error

	// RemoveMember unlinks a user; future billing resolves to the user's
	// own account, past ledger entries keep their original account ID.
	RemoveMember(ctx context.Context, organizationID string, userID string, requestingUserID string) error
}
