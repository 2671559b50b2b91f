package services

import (
	"context"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
)

// PickupSvcFacade models the pre-shipment request workflow.
type PickupSvcFacade interface {
	// CreatePickup creates a new request in REQUESTED for the client.
	CreatePickup(ctx context.Context, req dto.CreatePickupRequest, clientUserID string) (*domain.PickupRequest, error)

	// GetPickup retrieves a request visible to the requesting user.
	GetPickup(ctx context.Context, requestID string, requestingUserID string) (*domain.PickupRequest, error)

	// ListPickups returns a page of requests: all for staff, own otherwise.
	ListPickups(ctx context.Context, requestingUserID string, params dto.ListPickupsParams) (*dto.ListPickupsResponse, error)

	// UpdatePickup edits a request; owning client only, REQUESTED only.
	UpdatePickup(ctx context.Context, requestID string, req dto.UpdatePickupRequest, requestingUserID string) (*domain.PickupRequest, error)

	// MarkReady moves an owned request from REQUESTED to READY_FOR_PICKUP.
	MarkReady(ctx context.Context, requestID string, requestingUserID string) (*domain.PickupRequest, error)

	// Approve promotes the request into a shipment in ready_for_pickup.
	// The request ends APPROVED with a back-reference to the new tracking
	// number; promotion is atomic.
	Approve(ctx context.Context, requestID string, req dto.ApprovePickupRequest, requestingUserID string) (*domain.Shipment, error)

	// Reject terminates the request with a mandatory reason.
	Reject(ctx context.Context, requestID string, reason string, requestingUserID string) (*domain.PickupRequest, error)

	// DeletePickup removes an owned request while still REQUESTED.
	DeletePickup(ctx context.Context, requestID string, requestingUserID string) error
}
