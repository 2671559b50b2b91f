package mapping

import (
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	"github.com/swiftparcel/parcel_broker_app/internal/models"
)

// ToModelShipment converts a domain Shipment to a model Shipment. Items and
// history are persisted through their own models and are not carried here.
func ToModelShipment(d domain.Shipment) models.Shipment {
	return models.Shipment{
		TrackingNumber:            d.TrackingNumber,
		AccountID:                 d.AccountID,
		UserID:                    d.UserID,
		Origin:                    ToModelAddress(d.Origin),
		Destination:               ToModelAddress(d.Destination),
		ServiceCode:               d.ServiceCode,
		Status:                    string(d.Status),
		CurrentLocation:           d.CurrentLocation,
		Price:                     d.Price,
		CostPrice:                 d.CostPrice,
		DHLConfirmed:              d.DHLConfirmed,
		AllowPublicLocationUpdate: d.AllowPublicLocationUpdate,
		PickupRequestID:           d.PickupRequestID,
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShipment converts a model Shipment to a domain Shipment. Items and
// History start empty; callers attach them after loading the child tables.
func ToDomainShipment(m models.Shipment) domain.Shipment {
	return domain.Shipment{
		TrackingNumber:            m.TrackingNumber,
		AccountID:                 m.AccountID,
		UserID:                    m.UserID,
		Origin:                    ToDomainAddress(m.Origin),
		Destination:               ToDomainAddress(m.Destination),
		ServiceCode:               m.ServiceCode,
		Status:                    domain.ShipmentStatus(m.Status),
		CurrentLocation:           m.CurrentLocation,
		Price:                     m.Price,
		CostPrice:                 m.CostPrice,
		DHLConfirmed:              m.DHLConfirmed,
		AllowPublicLocationUpdate: m.AllowPublicLocationUpdate,
		PickupRequestID:           m.PickupRequestID,
		AuditFields:               ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainShipmentSlice converts a slice of model Shipments to domain Shipments
func ToDomainShipmentSlice(ms []models.Shipment) []domain.Shipment {
	ds := make([]domain.Shipment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainShipment(m)
	}
	return ds
}

// ToModelShipmentItem converts a domain ShipmentItem to its model shape
func ToModelShipmentItem(trackingNumber string, d domain.ShipmentItem) models.ShipmentItem {
	return models.ShipmentItem{
		ItemID:         d.ItemID,
		TrackingNumber: trackingNumber,
		Description:    d.Description,
		WeightKg:       d.WeightKg,
		LengthCm:       d.LengthCm,
		WidthCm:        d.WidthCm,
		HeightCm:       d.HeightCm,
		Quantity:       d.Quantity,
		CustomsValue:   d.CustomsValue,
		HSCode:         d.HSCode,
	}
}

// ToDomainShipmentItem converts a model ShipmentItem back to the domain shape
func ToDomainShipmentItem(m models.ShipmentItem) domain.ShipmentItem {
	return domain.ShipmentItem{
		ItemID:       m.ItemID,
		Description:  m.Description,
		WeightKg:     m.WeightKg,
		LengthCm:     m.LengthCm,
		WidthCm:      m.WidthCm,
		HeightCm:     m.HeightCm,
		Quantity:     m.Quantity,
		CustomsValue: m.CustomsValue,
		HSCode:       m.HSCode,
	}
}

// ToDomainShipmentItemSlice converts model ShipmentItems to domain ShipmentItems
func ToDomainShipmentItemSlice(ms []models.ShipmentItem) []domain.ShipmentItem {
	ds := make([]domain.ShipmentItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainShipmentItem(m)
	}
	return ds
}

// ToModelShipmentEvent converts a domain ShipmentEvent to its model shape
func ToModelShipmentEvent(trackingNumber string, d domain.ShipmentEvent) models.ShipmentEvent {
	return models.ShipmentEvent{
		EventID:        d.EventID,
		TrackingNumber: trackingNumber,
		Status:         string(d.Status),
		Description:    d.Description,
		Location:       d.Location,
		Timestamp:      d.Timestamp,
		RecordedBy:     d.RecordedBy,
	}
}

// ToDomainShipmentEvent converts a model ShipmentEvent back to the domain shape
func ToDomainShipmentEvent(m models.ShipmentEvent) domain.ShipmentEvent {
	return domain.ShipmentEvent{
		EventID:     m.EventID,
		Status:      domain.ShipmentStatus(m.Status),
		Description: m.Description,
		Location:    m.Location,
		Timestamp:   m.Timestamp,
		RecordedBy:  m.RecordedBy,
	}
}

// ToDomainShipmentEventSlice converts model ShipmentEvents to domain ShipmentEvents
func ToDomainShipmentEventSlice(ms []models.ShipmentEvent) []domain.ShipmentEvent {
	ds := make([]domain.ShipmentEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainShipmentEvent(m)
	}
	return ds
}
