package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungersaviour/order-system/shared/events"
	"github.com/hungersaviour/order-system/shared/models"
)

func placedOrder(t *testing.T) *Order {
	t.Helper()
	order, err := PlaceOrder(
		models.GenerateUUID(), models.GenerateUUID(), "1 Main St",
		[]OrderLineInput{
			{MenuItemID: models.GenerateUUID(), MenuItemName: "Margherita", Quantity: 2, UnitPrice: models.NewMoney(500, "usd")},
			{MenuItemID: models.GenerateUUID(), MenuItemName: "Garlic Bread", Quantity: 1, UnitPrice: models.NewMoney(800, "usd")},
		},
		"usd", Contacts{},
	)
	require.NoError(t, err)
	return order
}

func TestPlaceOrder(t *testing.T) {
	contacts := Contacts{
		UserEmail:            "alice@example.com",
		RestaurantName:       "Luigi's",
		RestaurantOwnerEmail: "luigi@example.com",
	}

	order, err := PlaceOrder(
		models.GenerateUUID(), models.GenerateUUID(), "1 Main St",
		[]OrderLineInput{
			{MenuItemID: models.GenerateUUID(), MenuItemName: "Margherita", Quantity: 2, UnitPrice: models.NewMoney(500, "usd")},
			{MenuItemID: models.GenerateUUID(), MenuItemName: "Garlic Bread", Quantity: 1, UnitPrice: models.NewMoney(800, "usd")},
		},
		"usd", contacts,
	)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, int64(1800), order.TotalAmount.Amount)
	assert.Equal(t, "usd", order.TotalAmount.Currency)
	assert.Equal(t, int64(1000), order.Lines[0].Subtotal.Amount)
	assert.Equal(t, int64(800), order.Lines[1].Subtotal.Amount)
	assert.Equal(t, 1, order.Version.Value)

	require.Len(t, order.Events(), 1)
	evt := order.Events()[0]
	assert.Equal(t, events.OrderPlacedEvent, evt.EventType)
	assert.Equal(t, order.ID, evt.AggregateID)

	data, ok := evt.Data.(OrderStatusData)
	require.True(t, ok)
	assert.Equal(t, OrderStatusPending, data.Status)
	assert.Equal(t, "alice@example.com", data.UserEmail)
	assert.Equal(t, "Luigi's", data.RestaurantName)
	assert.Equal(t, "luigi@example.com", data.RestaurantOwnerEmail)
}

func TestPlaceOrder_Validation(t *testing.T) {
	userID := models.GenerateUUID()
	restaurantID := models.GenerateUUID()
	itemID := models.GenerateUUID()

	tests := []struct {
		name  string
		lines []OrderLineInput
	}{
		{
			name:  "no lines",
			lines: nil,
		},
		{
			name: "zero quantity",
			lines: []OrderLineInput{
				{MenuItemID: itemID, MenuItemName: "Margherita", Quantity: 0, UnitPrice: models.NewMoney(500, "usd")},
			},
		},
		{
			name: "negative price",
			lines: []OrderLineInput{
				{MenuItemID: itemID, MenuItemName: "Margherita", Quantity: 1, UnitPrice: models.NewMoney(-500, "usd")},
			},
		},
		{
			name: "mixed currencies",
			lines: []OrderLineInput{
				{MenuItemID: itemID, MenuItemName: "Margherita", Quantity: 1, UnitPrice: models.NewMoney(500, "usd")},
				{MenuItemID: itemID, MenuItemName: "Tiramisu", Quantity: 1, UnitPrice: models.NewMoney(400, "eur")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlaceOrder(userID, restaurantID, "1 Main St", tt.lines, "usd", Contacts{})
			require.Error(t, err)

			var invalid *InvalidRequestError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestOrder_PaymentFlow(t *testing.T) {
	order := placedOrder(t)
	order.ClearEvents()

	require.NoError(t, order.BeginPaymentProcessing(Contacts{}))
	assert.Equal(t, OrderStatusPaymentProcessing, order.Status)

	require.NoError(t, order.ConfirmPayment("pay-42", Contacts{}))
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.Equal(t, "pay-42", order.PaymentID)

	require.NoError(t, order.StartPreparing(Contacts{}))
	assert.Equal(t, OrderStatusPreparing, order.Status)

	evts := order.Events()
	require.Len(t, evts, 3)
	assert.Equal(t, events.OrderPaymentProcessingEvent, evts[0].EventType)
	assert.Equal(t, events.OrderConfirmedEvent, evts[1].EventType)
	assert.Equal(t, events.OrderPreparingEvent, evts[2].EventType)

	// One version bump per accepted transition
	assert.Equal(t, 4, order.Version.Value)
}

func TestOrder_OutOfOrderTransitionsRejected(t *testing.T) {
	t.Run("confirm before processing", func(t *testing.T) {
		order := placedOrder(t)
		err := order.ConfirmPayment("pay-42", Contacts{})
		require.Error(t, err)

		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, OrderStatusPending, transitionErr.From)
		assert.Equal(t, OrderStatusConfirmed, transitionErr.To)
	})

	t.Run("prepare before confirmed", func(t *testing.T) {
		order := placedOrder(t)
		err := order.StartPreparing(Contacts{})
		require.Error(t, err)

		var transitionErr *InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})

	t.Run("double payment processing", func(t *testing.T) {
		order := placedOrder(t)
		require.NoError(t, order.BeginPaymentProcessing(Contacts{}))
		err := order.BeginPaymentProcessing(Contacts{})
		require.Error(t, err)

		var transitionErr *InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestOrder_FailPayment(t *testing.T) {
	order := placedOrder(t)
	require.NoError(t, order.BeginPaymentProcessing(Contacts{}))
	order.ClearEvents()

	require.NoError(t, order.FailPayment(Contacts{}))
	assert.Equal(t, OrderStatusPaymentFailed, order.Status)

	require.Len(t, order.Events(), 1)
	assert.Equal(t, events.OrderPaymentFailedEvent, order.Events()[0].EventType)

	// A failed order is not terminal, it may still be cancelled
	require.NoError(t, order.Cancel(Contacts{}))
	assert.Equal(t, OrderStatusCancelled, order.Status)
}

func TestOrder_TerminalStatesRejectMutation(t *testing.T) {
	t.Run("delivered", func(t *testing.T) {
		order := placedOrder(t)
		require.NoError(t, order.UpdateStatus(OrderStatusDelivered, Contacts{}))

		assert.Error(t, order.UpdateStatus(OrderStatusPreparing, Contacts{}))
		assert.Error(t, order.Cancel(Contacts{}))
		assert.Error(t, order.FailPayment(Contacts{}))
	})

	t.Run("cancelled", func(t *testing.T) {
		order := placedOrder(t)
		require.NoError(t, order.Cancel(Contacts{}))

		assert.Error(t, order.UpdateStatus(OrderStatusPreparing, Contacts{}))
		assert.Error(t, order.Cancel(Contacts{}))
	})
}

func TestOrder_CancelMidPayment(t *testing.T) {
	order := placedOrder(t)
	require.NoError(t, order.BeginPaymentProcessing(Contacts{}))
	order.ClearEvents()

	require.NoError(t, order.Cancel(Contacts{}))
	assert.Equal(t, OrderStatusCancelled, order.Status)

	require.Len(t, order.Events(), 1)
	assert.Equal(t, events.OrderCancelledEvent, order.Events()[0].EventType)
}

func TestOrder_EnrichEvents(t *testing.T) {
	order := placedOrder(t)
	order.ClearEvents()
	require.NoError(t, order.UpdateStatus(OrderStatusOutForDelivery, Contacts{}))

	order.EnrichEvents(Contacts{
		UserEmail:            "alice@example.com",
		RestaurantName:       "Luigi's",
		RestaurantOwnerEmail: "luigi@example.com",
	})

	require.Len(t, order.Events(), 1)
	data := order.Events()[0].Data.(OrderStatusData)
	assert.Equal(t, "alice@example.com", data.UserEmail)
	assert.Equal(t, "Luigi's", data.RestaurantName)
	assert.Equal(t, "luigi@example.com", data.RestaurantOwnerEmail)
	assert.Equal(t, OrderStatusOutForDelivery, data.Status)
}

func TestOrder_ClearEvents(t *testing.T) {
	order := placedOrder(t)
	require.Len(t, order.Events(), 1)

	order.ClearEvents()
	assert.Empty(t, order.Events())
}
