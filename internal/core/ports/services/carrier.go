package services

import (
	"context"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// CarrierBooking is the carrier's acknowledgment of a booked shipment.
type CarrierBooking struct {
	CarrierReference string
	LabelURL         string
}

// CarrierBooker is the narrow port to the external carrier's booking API.
// The call is a single bounded remote operation; implementations must honor
// ctx cancellation and apply their own timeout. Label formats, field-length
// normalization and the wire protocol live behind this interface.
type CarrierBooker interface {
	BookShipment(ctx context.Context, shipment *domain.Shipment) (*CarrierBooking, error)
}
