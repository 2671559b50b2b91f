package repositories

import (
	"context"
	"time"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// PickupReader defines read operations for pickup request data
type PickupReader interface {
	// FindPickupByID retrieves a request with its parcels.
	FindPickupByID(ctx context.Context, requestID string) (*domain.PickupRequest, error)

	// ListPickupsByClient retrieves a paginated list of a client's requests,
	// newest first, using token-based pagination.
	ListPickupsByClient(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.PickupRequest, *string, error)

	// ListAllPickups retrieves a paginated list of all requests (staff view).
	ListAllPickups(ctx context.Context, limit int, nextToken *string) ([]domain.PickupRequest, *string, error)
}

// PickupWriter defines write operations for pickup request data. Guarded
// updates carry the expected current status in their WHERE clause; a zero
// affected-row count means the request moved on concurrently and surfaces
// as ErrConflict.
type PickupWriter interface {
	// SavePickup persists a new request with its parcels.
	SavePickup(ctx context.Context, request domain.PickupRequest) error

	// UpdatePickup replaces the editable fields while the request is still
	// REQUESTED.
	UpdatePickup(ctx context.Context, request domain.PickupRequest) error

	// UpdatePickupStatus moves the request between pre-approval statuses
	// (REQUESTED -> READY_FOR_PICKUP) or rejects it with a reason.
	UpdatePickupStatus(ctx context.Context, requestID string, from []domain.PickupRequestStatus, to domain.PickupRequestStatus, rejectionReason string, userID string, now time.Time) error

	// DeletePickup hard-deletes a request while it is still REQUESTED.
	DeletePickup(ctx context.Context, requestID string) error

	// PromoteToShipment atomically inserts the shipment and marks the
	// request APPROVED with the shipment back-reference. Either both writes
	// land or neither does; a request that already left an approvable
	// status fails with ErrConflict and no shipment is created.
	PromoteToShipment(ctx context.Context, request domain.PickupRequest, shipment domain.Shipment) error
}

// PickupRepositoryFacade combines all pickup request repository interfaces
type PickupRepositoryFacade interface {
	PickupReader
	PickupWriter
}
