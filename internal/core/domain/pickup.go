package domain

import (
	"github.com/shopspring/decimal"
)

// PickupRequestStatus is the closed set of pre-shipment request states.
type PickupRequestStatus string

const (
	PickupRequested      PickupRequestStatus = "REQUESTED"
	PickupReadyForPickup PickupRequestStatus = "READY_FOR_PICKUP"
	PickupApproved       PickupRequestStatus = "APPROVED"
	PickupRejected       PickupRequestStatus = "REJECTED"
	PickupCompleted      PickupRequestStatus = "COMPLETED"
)

// RequestedParcel is one parcel on a pickup request, before promotion.
type RequestedParcel struct {
	ParcelID    string          `json:"parcelID"`
	Description string          `json:"description"`
	WeightKg    decimal.Decimal `json:"weightKg"`
	LengthCm    decimal.Decimal `json:"lengthCm"`
	WidthCm     decimal.Decimal `json:"widthCm"`
	HeightCm    decimal.Decimal `json:"heightCm"`
	Quantity    int             `json:"quantity"`
}

// PickupRequest models a client's pre-shipment request. A request is editable
// by its owning client only while REQUESTED; REJECTED and APPROVED are
// terminal, and an APPROVED request keeps a permanent back-reference to the
// shipment it was promoted into.
type PickupRequest struct {
	RequestID        string              `json:"requestID"`
	ClientID         string              `json:"clientID"`
	Sender           Address             `json:"sender"`
	Receiver         Address             `json:"receiver"`
	Parcels          []RequestedParcel   `json:"parcels"`
	ServiceCode      string              `json:"serviceCode"`
	Status           PickupRequestStatus `json:"status"`
	RejectionReason  string              `json:"rejectionReason,omitempty"`
	ShipmentTracking string              `json:"shipmentTracking,omitempty"` // back-reference once promoted
	AuditFields
}

// IsEditable reports whether the owning client may still modify or delete
// the request.
func (p PickupRequest) IsEditable() bool {
	return p.Status == PickupRequested
}

// IsApprovable reports whether staff may promote the request into a shipment.
func (p PickupRequest) IsApprovable() bool {
	return p.Status == PickupRequested || p.Status == PickupReadyForPickup
}
