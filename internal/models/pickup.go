package models

import (
	"github.com/shopspring/decimal"
)

// PickupRequest represents a row of the pickup_requests table. Sender and
// Receiver are JSONB columns; parcels live in pickup_parcels.
type PickupRequest struct {
	RequestID        string  `db:"request_id"` // Primary Key
	ClientID         string  `db:"client_id"`
	Sender           Address `db:"sender"`
	Receiver         Address `db:"receiver"`
	ServiceCode      string  `db:"service_code"`
	Status           string  `db:"status"`
	RejectionReason  string  `db:"rejection_reason"`  // nullable
	ShipmentTracking string  `db:"shipment_tracking"` // nullable, set on promotion
	AuditFields
}

// PickupParcel represents one row of the pickup_parcels table.
type PickupParcel struct {
	ParcelID    string          `db:"parcel_id"`
	RequestID   string          `db:"request_id"`
	Description string          `db:"description"`
	WeightKg    decimal.Decimal `db:"weight_kg"`
	LengthCm    decimal.Decimal `db:"length_cm"`
	WidthCm     decimal.Decimal `db:"width_cm"`
	HeightCm    decimal.Decimal `db:"height_cm"`
	Quantity    int             `db:"quantity"`
}
