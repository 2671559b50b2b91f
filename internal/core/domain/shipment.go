package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentItem is one parcel within a shipment, including the customs fields
// the carrier requires for cross-border moves.
type ShipmentItem struct {
	ItemID       string          `json:"itemID"`
	Description  string          `json:"description"`
	WeightKg     decimal.Decimal `json:"weightKg"`
	LengthCm     decimal.Decimal `json:"lengthCm"`
	WidthCm      decimal.Decimal `json:"widthCm"`
	HeightCm     decimal.Decimal `json:"heightCm"`
	Quantity     int             `json:"quantity"`
	CustomsValue decimal.Decimal `json:"customsValue"`
	HSCode       string          `json:"hsCode,omitempty"`
}

// ShipmentEvent is one append-only history record. Manual location updates
// append events without changing the shipment status.
type ShipmentEvent struct {
	EventID     string         `json:"eventID"`
	Status      ShipmentStatus `json:"status"`
	Description string         `json:"description"`
	Location    string         `json:"location,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	RecordedBy  string         `json:"recordedBy"`
}

// Shipment is a live parcel shipment. The tracking number is issued once and
// never changes; History only grows.
type Shipment struct {
	TrackingNumber            string          `json:"trackingNumber"`
	AccountID                 string          `json:"accountID"` // billing account debited for this shipment
	UserID                    string          `json:"userID"`    // creating user
	Origin                    Address         `json:"origin"`
	Destination               Address         `json:"destination"`
	Items                     []ShipmentItem  `json:"items"`
	ServiceCode               string          `json:"serviceCode"`
	Status                    ShipmentStatus  `json:"status"`
	History                   []ShipmentEvent `json:"history"`
	CurrentLocation           string          `json:"currentLocation,omitempty"`
	Price                     decimal.Decimal `json:"price"`        // billed to the client
	CostPrice                 decimal.Decimal `json:"costPrice"`    // quoted by the carrier
	DHLConfirmed              bool            `json:"dhlConfirmed"` // booked with the external carrier
	AllowPublicLocationUpdate bool            `json:"allowPublicLocationUpdate"`
	PickupRequestID           string          `json:"pickupRequestID,omitempty"` // set when promoted from a request
	AuditFields
}
