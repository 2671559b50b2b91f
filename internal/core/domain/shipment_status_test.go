package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

func TestShipmentStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.ShipmentStatus
		to      domain.ShipmentStatus
		allowed bool
	}{
		{"draft to pending on client edit", domain.StatusDraft, domain.StatusPending, true},
		{"pending self-loop on client edit", domain.StatusPending, domain.StatusPending, true},
		{"pending to ready_for_pickup on booking", domain.StatusPending, domain.StatusReadyForPickup, true},
		{"updated to picked_up on booking", domain.StatusUpdated, domain.StatusPickedUp, true},
		{"ready_for_pickup to picked_up on driver scan", domain.StatusReadyForPickup, domain.StatusPickedUp, true},
		{"picked_up to in_transit", domain.StatusPickedUp, domain.StatusInTransit, true},
		{"in_transit to out_for_delivery", domain.StatusInTransit, domain.StatusOutForDelivery, true},
		{"out_for_delivery to delivered", domain.StatusOutForDelivery, domain.StatusDelivered, true},
		{"in_transit to exception", domain.StatusInTransit, domain.StatusException, true},
		{"exception to returned", domain.StatusException, domain.StatusReturned, true},
		{"out_for_delivery to cancelled", domain.StatusOutForDelivery, domain.StatusCancelled, true},

		{"delivered is terminal", domain.StatusDelivered, domain.StatusInTransit, false},
		{"cancelled is terminal", domain.StatusCancelled, domain.StatusPending, false},
		{"returned is terminal", domain.StatusReturned, domain.StatusException, false},
		{"no skipping ahead from picked_up", domain.StatusPickedUp, domain.StatusOutForDelivery, false},
		{"no going backwards", domain.StatusInTransit, domain.StatusPickedUp, false},
		{"draft cannot be booked directly", domain.StatusDraft, domain.StatusReadyForPickup, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.TransitionTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got)
			} else {
				var invalidErr *apperrors.InvalidTransitionError
				require.ErrorAs(t, err, &invalidErr)
				assert.Equal(t, string(tt.from), invalidErr.From)
				assert.Equal(t, string(tt.to), invalidErr.To)
			}
		})
	}
}

func TestShipmentStatus_EveryNonTerminalCanFlagExceptionOrCancel(t *testing.T) {
	for _, status := range domain.AllShipmentStatuses() {
		if status.IsTerminal() || status == domain.StatusException {
			continue
		}
		assert.True(t, status.CanTransitionTo(domain.StatusException), "%s should allow exception", status)
		assert.True(t, status.CanTransitionTo(domain.StatusCancelled), "%s should allow cancel", status)
	}
	// exception itself can still be cancelled
	assert.True(t, domain.StatusException.CanTransitionTo(domain.StatusCancelled))
}

func TestParseShipmentStatus(t *testing.T) {
	status, err := domain.ParseShipmentStatus("picked_up")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPickedUp, status)

	_, err = domain.ParseShipmentStatus("PICKED_UP")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.ParseShipmentStatus("teleported")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestShipmentStatus_Terminality(t *testing.T) {
	assert.True(t, domain.StatusDelivered.IsTerminal())
	assert.True(t, domain.StatusCancelled.IsTerminal())
	assert.True(t, domain.StatusReturned.IsTerminal())
	assert.False(t, domain.StatusException.IsTerminal())
	assert.False(t, domain.ShipmentStatus("bogus").IsTerminal())
}
