package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, raw := range []string{
		"PENDING", "PAYMENT_PROCESSING", "CONFIRMED", "PREPARING",
		"OUT_FOR_DELIVERY", "DELIVERED", "PAYMENT_FAILED", "CANCELLED",
	} {
		status, err := ParseOrderStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, status.String())
	}
}

func TestParseOrderStatus_Unknown(t *testing.T) {
	for _, raw := range []string{"", "pending", "SHIPPED", "DONE"} {
		_, err := ParseOrderStatus(raw)
		require.Error(t, err, raw)

		var invalid *InvalidRequestError
		assert.ErrorAs(t, err, &invalid)
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())

	for _, status := range []OrderStatus{
		OrderStatusPending, OrderStatusPaymentProcessing, OrderStatusConfirmed,
		OrderStatusPreparing, OrderStatusOutForDelivery, OrderStatusPaymentFailed,
	} {
		assert.False(t, status.IsTerminal(), status)
	}
}
