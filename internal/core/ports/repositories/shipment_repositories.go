package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// ShipmentReader defines read operations for shipment data
type ShipmentReader interface {
	// FindByTracking retrieves a shipment with its items and full history.
	FindByTracking(ctx context.Context, trackingNumber string) (*domain.Shipment, error)

	// ListByAccount retrieves a paginated list of shipments billed to an
	// account, newest first, using token-based pagination.
	ListByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Shipment, *string, error)

	// ListAll retrieves a paginated list of all shipments (staff view).
	ListAll(ctx context.Context, limit int, nextToken *string) ([]domain.Shipment, *string, error)
}

// ShipmentWriter defines write operations for shipment data
type ShipmentWriter interface {
	// SaveShipment persists a new shipment with its items and initial
	// history entry in one transaction.
	SaveShipment(ctx context.Context, shipment domain.Shipment) error

	// UpdateDetailsInTx updates client-editable fields (addresses, items,
	// service code) within the given transaction.
	UpdateDetailsInTx(ctx context.Context, tx pgx.Tx, shipment domain.Shipment) error

	// DeleteShipment hard-deletes a shipment with its items and history.
	DeleteShipment(ctx context.Context, trackingNumber string) error
}

// ShipmentStatusUpdate carries the fields a status transition may touch.
// Nil pointers leave the column unchanged.
type ShipmentStatusUpdate struct {
	Status          domain.ShipmentStatus
	DHLConfirmed    *bool
	Price           *decimal.Decimal
	CurrentLocation *string
	UpdatedBy       string
	UpdatedAt       time.Time
}

// ShipmentTransactionSupport defines operations used inside per-shipment
// serialized transactions.
type ShipmentTransactionSupport interface {
	// FindByTrackingForUpdate selects the shipment row and locks it for
	// update within the given transaction. History and items are included
	// so transition decisions can inspect them.
	FindByTrackingForUpdate(ctx context.Context, tx pgx.Tx, trackingNumber string) (*domain.Shipment, error)

	// ApplyStatusInTx updates the status columns within the transaction.
	ApplyStatusInTx(ctx context.Context, tx pgx.Tx, trackingNumber string, update ShipmentStatusUpdate) error

	// AppendEventInTx appends one history record within the transaction.
	AppendEventInTx(ctx context.Context, tx pgx.Tx, trackingNumber string, event domain.ShipmentEvent) error

	// InsertShipmentInTx inserts a shipment with items and initial history
	// within the given transaction. Used by pickup request promotion.
	InsertShipmentInTx(ctx context.Context, tx pgx.Tx, shipment domain.Shipment) error
}

// ShipmentRepositoryFacade combines all shipment repository interfaces
type ShipmentRepositoryFacade interface {
	ShipmentReader
	ShipmentWriter
	ShipmentTransactionSupport
}

// ShipmentRepositoryWithTx extends ShipmentRepositoryFacade with transaction
// capabilities
type ShipmentRepositoryWithTx interface {
	ShipmentRepositoryFacade
	TransactionManager
}
