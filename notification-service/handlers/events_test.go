package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/notification-service/application"
	"github.com/hungersaviour/order-system/notification-service/domain"
	"github.com/hungersaviour/order-system/notification-service/mocks"
	"github.com/hungersaviour/order-system/shared/events"
	"github.com/hungersaviour/order-system/shared/models"
)

func TestOrderEventsHandler(t *testing.T) {
	sender := mocks.NewMockEmailSender(t)
	handler := NewOrderEventsHandler(
		application.NewNotifyOrderStatus(sender, zap.NewNop()),
		zap.NewNop(),
	)

	orderID := models.GenerateUUID()
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":               orderID.String(),
		"user_email":             "alice@example.com",
		"restaurant_name":        "Luigi's",
		"restaurant_owner_email": "",
		"status":                 "OUT_FOR_DELIVERY",
		"total_amount":           map[string]interface{}{"amount": 1800, "currency": "usd"},
		"delivery_address":       "1 Main St",
	})
	require.NoError(t, err)

	var sent []domain.Email
	sender.EXPECT().Send(mock.Anything, mock.AnythingOfType("domain.Email")).
		Run(func(ctx context.Context, email domain.Email) {
			sent = append(sent, email)
		}).Return(nil).Once()

	evt := events.NewEvent(orderID, events.OrderStatusUpdatedEvent, json.RawMessage(payload))
	require.NoError(t, handler.Handle(context.Background(), evt))

	require.Len(t, sent, 1)
	assert.Equal(t, "alice@example.com", sent[0].To)
	assert.Contains(t, sent[0].Subject, "Out for Delivery")
}

func TestOrderEventsHandler_DropsUndecodablePayload(t *testing.T) {
	sender := mocks.NewMockEmailSender(t)
	handler := NewOrderEventsHandler(
		application.NewNotifyOrderStatus(sender, zap.NewNop()),
		zap.NewNop(),
	)

	evt := events.NewEvent(models.GenerateUUID(), events.OrderPlacedEvent, json.RawMessage(`{not json`))

	// Returns nil so the queue does not redeliver a poison message
	assert.NoError(t, handler.Handle(context.Background(), evt))
}
