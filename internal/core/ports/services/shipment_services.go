package services

import (
	"context"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
)

// ShipmentSvcFacade drives the shipment lifecycle state machine.
type ShipmentSvcFacade interface {
	// CreateShipment creates a draft shipment directly (not via a pickup
	// request).
	CreateShipment(ctx context.Context, req dto.CreateShipmentRequest, creatorUserID string) (*domain.Shipment, error)

	// GetShipment retrieves a shipment visible to the requesting user.
	GetShipment(ctx context.Context, trackingNumber string, requestingUserID string) (*domain.Shipment, error)

	// GetPublicTracking retrieves the public tracking view, no auth.
	GetPublicTracking(ctx context.Context, trackingNumber string) (*domain.Shipment, error)

	// ListShipments returns a page of shipments: all of them for staff, the
	// requesting user's billing account's otherwise.
	ListShipments(ctx context.Context, requestingUserID string, params dto.ListShipmentsParams) (*dto.ListShipmentsResponse, error)

	// UpdateShipment applies a client edit; allowed only in client-editable
	// states and moves the status to updated (or pending for drafts).
	UpdateShipment(ctx context.Context, trackingNumber string, req dto.UpdateShipmentRequest, requestingUserID string) (*domain.Shipment, error)

	// UpdateStatus applies an explicit status transition with a history
	// entry. Staff/driver only.
	UpdateStatus(ctx context.Context, trackingNumber string, req dto.UpdateStatusRequest, requestingUserID string) (*domain.Shipment, error)

	// ConfirmPickup is the driver scan: ready_for_pickup -> picked_up,
	// idempotent on repeat scans.
	ConfirmPickup(ctx context.Context, trackingNumber string, location string, requestingUserID string) (*domain.Shipment, error)

	// Book prices the shipment, debits the billing account and books with
	// the external carrier. The debit is reversed if the carrier call fails.
	Book(ctx context.Context, trackingNumber string, req dto.BookShipmentRequest, requestingUserID string) (*domain.Shipment, error)

	// Cancel moves a non-terminal shipment to cancelled, refunding any
	// shipment fee already debited.
	Cancel(ctx context.Context, trackingNumber string, reason string, requestingUserID string) (*domain.Shipment, error)

	// UpdateLocation appends a checkpoint without changing status.
	UpdateLocation(ctx context.Context, trackingNumber string, req dto.UpdateLocationRequest, requestingUserID string) (*domain.Shipment, error)

	// DeleteShipment hard-deletes a shipment. Admin only.
	DeleteShipment(ctx context.Context, trackingNumber string, requestingUserID string) error
}
