package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// ShipmentItemRequest carries one shipment item with customs fields.
type ShipmentItemRequest struct {
	Description  string          `json:"description" binding:"required"`
	WeightKg     decimal.Decimal `json:"weightKg" binding:"required"`
	LengthCm     decimal.Decimal `json:"lengthCm" binding:"required"`
	WidthCm      decimal.Decimal `json:"widthCm" binding:"required"`
	HeightCm     decimal.Decimal `json:"heightCm" binding:"required"`
	Quantity     int             `json:"quantity" binding:"omitempty,min=1"`
	CustomsValue decimal.Decimal `json:"customsValue"`
	HSCode       string          `json:"hsCode"`
}

// CreateShipmentRequest is a direct shipment creation (client or staff);
// the shipment starts in draft.
type CreateShipmentRequest struct {
	Origin                    AddressRequest        `json:"origin" binding:"required"`
	Destination               AddressRequest        `json:"destination" binding:"required"`
	Items                     []ShipmentItemRequest `json:"items" binding:"required,min=1,dive"`
	ServiceCode               string                `json:"serviceCode" binding:"required"`
	CostPrice                 decimal.Decimal       `json:"costPrice"`
	AllowPublicLocationUpdate bool                  `json:"allowPublicLocationUpdate"`
}

// UpdateShipmentRequest replaces client-editable fields. A status-adjacent
// field may be bundled; when Status is nil the shipment status is not
// advanced beyond the edit transition.
type UpdateShipmentRequest struct {
	Origin                    *AddressRequest       `json:"origin"`
	Destination               *AddressRequest       `json:"destination"`
	Items                     []ShipmentItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	ServiceCode               *string               `json:"serviceCode"`
	AllowPublicLocationUpdate *bool                 `json:"allowPublicLocationUpdate"`
}

// UpdateStatusRequest moves a shipment to a new status with an optional
// checkpoint location.
type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location"`
}

// UpdateLocationRequest appends a checkpoint without changing status.
type UpdateLocationRequest struct {
	Location    string `json:"location" binding:"required"`
	Description string `json:"description"`
}

// BookShipmentRequest carries the carrier quote for booking. The quote may
// be omitted when the shipment already has a cost price (e.g. set at
// promotion time).
type BookShipmentRequest struct {
	CostPrice *decimal.Decimal `json:"costPrice"`
}

// ShipmentEventResponse mirrors one history record.
type ShipmentEventResponse struct {
	Status      domain.ShipmentStatus `json:"status"`
	Description string                `json:"description"`
	Location    string                `json:"location,omitempty"`
	Timestamp   time.Time             `json:"timestamp"`
}

// ShipmentResponse mirrors domain.Shipment.
type ShipmentResponse struct {
	TrackingNumber  string                  `json:"trackingNumber"`
	AccountID       string                  `json:"accountID"`
	Origin          domain.Address          `json:"origin"`
	Destination     domain.Address          `json:"destination"`
	Items           []domain.ShipmentItem   `json:"items"`
	ServiceCode     string                  `json:"serviceCode"`
	Status          domain.ShipmentStatus   `json:"status"`
	History         []ShipmentEventResponse `json:"history"`
	CurrentLocation string                  `json:"currentLocation,omitempty"`
	Price           decimal.Decimal         `json:"price"`
	CostPrice       decimal.Decimal         `json:"costPrice"`
	DHLConfirmed    bool                    `json:"dhlConfirmed"`
	CreatedAt       time.Time               `json:"createdAt"`
	LastUpdatedAt   time.Time               `json:"lastUpdatedAt"`
}

// ToShipmentResponse converts a domain.Shipment to its DTO.
func ToShipmentResponse(s *domain.Shipment) ShipmentResponse {
	history := make([]ShipmentEventResponse, len(s.History))
	for i, ev := range s.History {
		history[i] = ShipmentEventResponse{
			Status:      ev.Status,
			Description: ev.Description,
			Location:    ev.Location,
			Timestamp:   ev.Timestamp,
		}
	}
	return ShipmentResponse{
		TrackingNumber:  s.TrackingNumber,
		AccountID:       s.AccountID,
		Origin:          s.Origin,
		Destination:     s.Destination,
		Items:           s.Items,
		ServiceCode:     s.ServiceCode,
		Status:          s.Status,
		History:         history,
		CurrentLocation: s.CurrentLocation,
		Price:           s.Price,
		CostPrice:       s.CostPrice,
		DHLConfirmed:    s.DHLConfirmed,
		CreatedAt:       s.CreatedAt,
		LastUpdatedAt:   s.LastUpdatedAt,
	}
}

// TrackingResponse is the public tracking view: no prices, no billing.
type TrackingResponse struct {
	TrackingNumber  string                  `json:"trackingNumber"`
	Status          domain.ShipmentStatus   `json:"status"`
	CurrentLocation string                  `json:"currentLocation,omitempty"`
	History         []ShipmentEventResponse `json:"history"`
}

// ToTrackingResponse converts a shipment to its public tracking view.
// Location details are withheld unless the shipment opted into public
// location sharing.
func ToTrackingResponse(s *domain.Shipment) TrackingResponse {
	full := ToShipmentResponse(s)
	res := TrackingResponse{
		TrackingNumber: s.TrackingNumber,
		Status:         s.Status,
		History:        full.History,
	}
	if s.AllowPublicLocationUpdate {
		res.CurrentLocation = s.CurrentLocation
	} else {
		for i := range res.History {
			res.History[i].Location = ""
		}
	}
	return res
}

// ListShipmentsParams defines query parameters for listing shipments.
type ListShipmentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListShipmentsResponse wraps a page of shipments.
type ListShipmentsResponse struct {
	Shipments []ShipmentResponse `json:"shipments"`
	NextToken *string            `json:"nextToken,omitempty"`
}
