package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipment represents a row of the shipments table. Origin and Destination
// are JSONB columns; items and events live in their own tables keyed by the
// tracking number.
type Shipment struct {
	TrackingNumber            string          `db:"tracking_number"` // Primary Key
	AccountID                 string          `db:"account_id"`
	UserID                    string          `db:"user_id"`
	Origin                    Address         `db:"origin"`
	Destination               Address         `db:"destination"`
	ServiceCode               string          `db:"service_code"`
	Status                    string          `db:"status"`
	CurrentLocation           string          `db:"current_location"`
	Price                     decimal.Decimal `db:"price"`
	CostPrice                 decimal.Decimal `db:"cost_price"`
	DHLConfirmed              bool            `db:"dhl_confirmed"`
	AllowPublicLocationUpdate bool            `db:"allow_public_location_update"`
	PickupRequestID           string          `db:"pickup_request_id"` // nullable back-reference
	AuditFields
}

// ShipmentItem represents one row of the shipment_items table.
type ShipmentItem struct {
	ItemID         string          `db:"item_id"`
	TrackingNumber string          `db:"tracking_number"`
	Description    string          `db:"description"`
	WeightKg       decimal.Decimal `db:"weight_kg"`
	LengthCm       decimal.Decimal `db:"length_cm"`
	WidthCm        decimal.Decimal `db:"width_cm"`
	HeightCm       decimal.Decimal `db:"height_cm"`
	Quantity       int             `db:"quantity"`
	CustomsValue   decimal.Decimal `db:"customs_value"`
	HSCode         string          `db:"hs_code"`
}

// ShipmentEvent represents one row of the append-only shipment_events table.
type ShipmentEvent struct {
	EventID        string    `db:"event_id"`
	TrackingNumber string    `db:"tracking_number"`
	Status         string    `db:"status"`
	Description    string    `db:"description"`
	Location       string    `db:"location"`
	Timestamp      time.Time `db:"timestamp"`
	RecordedBy     string    `db:"recorded_by"`
}
