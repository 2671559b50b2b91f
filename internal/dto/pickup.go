package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// CreatePickupRequest is a client's new pre-shipment request.
type CreatePickupRequest struct {
	Sender      AddressRequest  `json:"sender" binding:"required"`
	Receiver    AddressRequest  `json:"receiver" binding:"required"`
	Parcels     []ParcelRequest `json:"parcels" binding:"required,min=1,dive"`
	ServiceCode string          `json:"serviceCode" binding:"required"`
}

// UpdatePickupRequest replaces the editable fields of a REQUESTED request.
type UpdatePickupRequest struct {
	Sender      *AddressRequest `json:"sender"`
	Receiver    *AddressRequest `json:"receiver"`
	Parcels     []ParcelRequest `json:"parcels" binding:"omitempty,min=1,dive"`
	ServiceCode *string         `json:"serviceCode"`
}

// RejectPickupRequest carries the mandatory rejection reason.
type RejectPickupRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ApprovePickupRequest carries the carrier quote staff enters on approval.
type ApprovePickupRequest struct {
	CostPrice decimal.Decimal `json:"costPrice" binding:"required"`
}

// ParcelResponse mirrors domain.RequestedParcel.
type ParcelResponse struct {
	ParcelID    string          `json:"parcelID"`
	Description string          `json:"description"`
	WeightKg    decimal.Decimal `json:"weightKg"`
	LengthCm    decimal.Decimal `json:"lengthCm"`
	WidthCm     decimal.Decimal `json:"widthCm"`
	HeightCm    decimal.Decimal `json:"heightCm"`
	Quantity    int             `json:"quantity"`
}

// PickupResponse mirrors domain.PickupRequest.
type PickupResponse struct {
	RequestID        string                     `json:"requestID"`
	ClientID         string                     `json:"clientID"`
	Sender           domain.Address             `json:"sender"`
	Receiver         domain.Address             `json:"receiver"`
	Parcels          []ParcelResponse           `json:"parcels"`
	ServiceCode      string                     `json:"serviceCode"`
	Status           domain.PickupRequestStatus `json:"status"`
	RejectionReason  string                     `json:"rejectionReason,omitempty"`
	ShipmentTracking string                     `json:"shipmentTracking,omitempty"`
	CreatedAt        time.Time                  `json:"createdAt"`
	LastUpdatedAt    time.Time                  `json:"lastUpdatedAt"`
}

// ToPickupResponse converts a domain.PickupRequest to its DTO.
func ToPickupResponse(p *domain.PickupRequest) PickupResponse {
	parcels := make([]ParcelResponse, len(p.Parcels))
	for i, parcel := range p.Parcels {
		parcels[i] = ParcelResponse{
			ParcelID:    parcel.ParcelID,
			Description: parcel.Description,
			WeightKg:    parcel.WeightKg,
			LengthCm:    parcel.LengthCm,
			WidthCm:     parcel.WidthCm,
			HeightCm:    parcel.HeightCm,
			Quantity:    parcel.Quantity,
		}
	}
	return PickupResponse{
		RequestID:        p.RequestID,
		ClientID:         p.ClientID,
		Sender:           p.Sender,
		Receiver:         p.Receiver,
		Parcels:          parcels,
		ServiceCode:      p.ServiceCode,
		Status:           p.Status,
		RejectionReason:  p.RejectionReason,
		ShipmentTracking: p.ShipmentTracking,
		CreatedAt:        p.CreatedAt,
		LastUpdatedAt:    p.LastUpdatedAt,
	}
}

// ListPickupsParams defines query parameters for listing pickup requests.
type ListPickupsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListPickupsResponse wraps a page of pickup requests.
type ListPickupsResponse struct {
	Requests  []PickupResponse `json:"requests"`
	NextToken *string          `json:"nextToken,omitempty"`
}
