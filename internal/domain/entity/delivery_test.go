package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forkast/branch-ops/internal/domain/entity"
)

func TestDeliveryStatus_CanAdvanceTo(t *testing.T) {
	cases := []struct {
		from    entity.DeliveryStatus
		to      entity.DeliveryStatus
		allowed bool
	}{
		{entity.DeliveryPending, entity.DeliveryScheduled, true},
		{entity.DeliveryPending, entity.DeliveryInTransit, true}, // saltar estados hacia adelante es válido
		{entity.DeliveryPending, entity.DeliveryDelivered, true},
		{entity.DeliveryScheduled, entity.DeliveryInTransit, true},
		{entity.DeliveryInTransit, entity.DeliveryDelivered, true},

		// retroceder nunca
		{entity.DeliveryScheduled, entity.DeliveryPending, false},
		{entity.DeliveryInTransit, entity.DeliveryScheduled, false},
		{entity.DeliveryDelivered, entity.DeliveryInTransit, false},

		// mismo estado no es avance
		{entity.DeliveryScheduled, entity.DeliveryScheduled, false},

		// CANCELLED alcanzable desde cualquier no terminal
		{entity.DeliveryPending, entity.DeliveryCancelled, true},
		{entity.DeliveryScheduled, entity.DeliveryCancelled, true},
		{entity.DeliveryInTransit, entity.DeliveryCancelled, true},

		// los terminales no transicionan
		{entity.DeliveryDelivered, entity.DeliveryCancelled, false},
		{entity.DeliveryCancelled, entity.DeliveryScheduled, false},
		{entity.DeliveryCancelled, entity.DeliveryCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanAdvanceTo(tc.to),
			"%s -> %s debería ser %v", tc.from, tc.to, tc.allowed)
	}
}

func TestDeliveryStatus_Terminal(t *testing.T) {
	assert.True(t, entity.DeliveryDelivered.Terminal())
	assert.True(t, entity.DeliveryCancelled.Terminal())
	assert.False(t, entity.DeliveryPending.Terminal())
	assert.False(t, entity.DeliveryScheduled.Terminal())
	assert.False(t, entity.DeliveryInTransit.Terminal())
}
