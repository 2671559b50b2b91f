package domain

import (
	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
)

// ShipmentStatus is the closed set of shipment lifecycle states. Unknown
// status strings are rejected at the boundary by ParseShipmentStatus; no
// call site compares free-text values.
type ShipmentStatus string

const (
	StatusDraft          ShipmentStatus = "draft"
	StatusPending        ShipmentStatus = "pending"
	StatusUpdated        ShipmentStatus = "updated"
	StatusReadyForPickup ShipmentStatus = "ready_for_pickup"
	StatusPickedUp       ShipmentStatus = "picked_up"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusException      ShipmentStatus = "exception"
	StatusCancelled      ShipmentStatus = "cancelled"
	StatusReturned       ShipmentStatus = "returned"
)

// shipmentTransitions is the single canonical transition table. A transition
// is legal iff the requested target appears in the current status' set.
// Every non-terminal status may move to exception (flag for review) or
// cancelled (staff reject). delivered, cancelled and returned are terminal.
var shipmentTransitions = map[ShipmentStatus]map[ShipmentStatus]bool{
	StatusDraft: {
		StatusPending:   true, // client edit
		StatusUpdated:   true,
		StatusException: true,
		StatusCancelled: true,
	},
	StatusPending: {
		StatusPending:        true, // client edit self-loop
		StatusUpdated:        true,
		StatusReadyForPickup: true, // staff booking
		StatusPickedUp:       true,
		StatusException:      true,
		StatusCancelled:      true,
	},
	StatusUpdated: {
		StatusPending:        true,
		StatusUpdated:        true, // client edit self-loop
		StatusReadyForPickup: true,
		StatusPickedUp:       true,
		StatusException:      true,
		StatusCancelled:      true,
	},
	StatusReadyForPickup: {
		StatusReadyForPickup: true, // re-booking with the carrier
		StatusPickedUp:       true, // driver scan
		StatusException:      true,
		StatusCancelled:      true,
	},
	StatusPickedUp: {
		StatusInTransit: true,
		StatusException: true,
		StatusCancelled: true,
	},
	StatusInTransit: {
		StatusOutForDelivery: true,
		StatusException:      true,
		StatusCancelled:      true,
	},
	StatusOutForDelivery: {
		StatusDelivered: true,
		StatusException: true,
		StatusCancelled: true,
	},
	StatusException: {
		StatusPending:        true, // client rework
		StatusUpdated:        true,
		StatusReadyForPickup: true, // staff re-booking
		StatusPickedUp:       true,
		StatusReturned:       true, // review resolved: parcel sent back
		StatusCancelled:      true,
	},
	StatusDelivered: {},
	StatusCancelled: {},
	StatusReturned:  {},
}

// AllShipmentStatuses lists every valid status, in lifecycle order.
func AllShipmentStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		StatusDraft, StatusPending, StatusUpdated, StatusReadyForPickup,
		StatusPickedUp, StatusInTransit, StatusOutForDelivery, StatusDelivered,
		StatusException, StatusCancelled, StatusReturned,
	}
}

// ParseShipmentStatus validates a status string from an external source.
func ParseShipmentStatus(s string) (ShipmentStatus, error) {
	status := ShipmentStatus(s)
	if _, ok := shipmentTransitions[status]; !ok {
		return "", apperrors.ErrValidation
	}
	return status, nil
}

// IsTerminal reports whether no further transitions are possible.
func (s ShipmentStatus) IsTerminal() bool {
	return len(shipmentTransitions[s]) == 0 && s.IsValid()
}

// IsValid reports whether the status belongs to the closed set.
func (s ShipmentStatus) IsValid() bool {
	_, ok := shipmentTransitions[s]
	return ok
}

// CanTransitionTo reports whether the table permits moving to target.
func (s ShipmentStatus) CanTransitionTo(target ShipmentStatus) bool {
	return shipmentTransitions[s][target]
}

// TransitionTo validates the move against the table and returns the new
// status, or an InvalidTransitionError naming both states.
func (s ShipmentStatus) TransitionTo(target ShipmentStatus) (ShipmentStatus, error) {
	if !target.IsValid() {
		return "", apperrors.ErrValidation
	}
	if !s.CanTransitionTo(target) {
		return "", &apperrors.InvalidTransitionError{From: string(s), To: string(target)}
	}
	return target, nil
}

// IsClientEditable reports whether the owning client may still edit the
// shipment. Edits move the status to pending or updated without advancing
// carrier state.
func (s ShipmentStatus) IsClientEditable() bool {
	switch s {
	case StatusDraft, StatusPending, StatusUpdated, StatusException:
		return true
	}
	return false
}

// IsBookable reports whether staff may book the shipment with the carrier.
func (s ShipmentStatus) IsBookable() bool {
	switch s {
	case StatusPending, StatusUpdated, StatusReadyForPickup, StatusException:
		return true
	}
	return false
}
