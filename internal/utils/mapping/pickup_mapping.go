package mapping

import (
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	"github.com/swiftparcel/parcel_broker_app/internal/models"
)

// ToModelPickupRequest converts a domain PickupRequest to a model PickupRequest.
// Parcels are persisted separately through ToModelPickupParcel.
func ToModelPickupRequest(d domain.PickupRequest) models.PickupRequest {
	return models.PickupRequest{
		RequestID:        d.RequestID,
		ClientID:         d.ClientID,
		Sender:           ToModelAddress(d.Sender),
		Receiver:         ToModelAddress(d.Receiver),
		ServiceCode:      d.ServiceCode,
		Status:           string(d.Status),
		RejectionReason:  d.RejectionReason,
		ShipmentTracking: d.ShipmentTracking,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPickupRequest converts a model PickupRequest to a domain
// PickupRequest. Parcels start empty; callers attach them after loading the
// pickup_parcels rows.
func ToDomainPickupRequest(m models.PickupRequest) domain.PickupRequest {
	return domain.PickupRequest{
		RequestID:        m.RequestID,
		ClientID:         m.ClientID,
		Sender:           ToDomainAddress(m.Sender),
		Receiver:         ToDomainAddress(m.Receiver),
		ServiceCode:      m.ServiceCode,
		Status:           domain.PickupRequestStatus(m.Status),
		RejectionReason:  m.RejectionReason,
		ShipmentTracking: m.ShipmentTracking,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPickupRequestSlice converts model PickupRequests to domain PickupRequests
func ToDomainPickupRequestSlice(ms []models.PickupRequest) []domain.PickupRequest {
	ds := make([]domain.PickupRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPickupRequest(m)
	}
	return ds
}

// ToModelPickupParcel converts a domain RequestedParcel to its model shape
func ToModelPickupParcel(requestID string, d domain.RequestedParcel) models.PickupParcel {
	return models.PickupParcel{
		ParcelID:    d.ParcelID,
		RequestID:   requestID,
		Description: d.Description,
		WeightKg:    d.WeightKg,
		LengthCm:    d.LengthCm,
		WidthCm:     d.WidthCm,
		HeightCm:    d.HeightCm,
		Quantity:    d.Quantity,
	}
}

// ToDomainRequestedParcel converts a model PickupParcel back to the domain shape
func ToDomainRequestedParcel(m models.PickupParcel) domain.RequestedParcel {
	return domain.RequestedParcel{
		ParcelID:    m.ParcelID,
		Description: m.Description,
		WeightKg:    m.WeightKg,
		LengthCm:    m.LengthCm,
		WidthCm:     m.WidthCm,
		HeightCm:    m.HeightCm,
		Quantity:    m.Quantity,
	}
}

// ToDomainRequestedParcelSlice converts model PickupParcels to domain RequestedParcels
func ToDomainRequestedParcelSlice(ms []models.PickupParcel) []domain.RequestedParcel {
	ds := make([]domain.RequestedParcel, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRequestedParcel(m)
	}
	return ds
}
