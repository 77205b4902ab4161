package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/notification-service/application"
	"github.com/hungersaviour/order-system/notification-service/domain"
	"github.com/hungersaviour/order-system/shared/events"
)

// OrderEventsHandler consumes order status events and triggers notifications
type OrderEventsHandler struct {
	notify *application.NotifyOrderStatus
	log    *zap.Logger
}

// NewOrderEventsHandler creates a new OrderEventsHandler
func NewOrderEventsHandler(notify *application.NotifyOrderStatus, log *zap.Logger) *OrderEventsHandler {
	return &OrderEventsHandler{
		notify: notify,
		log:    log,
	}
}

// Handle implements events.EventHandler
func (h *OrderEventsHandler) Handle(ctx context.Context, evt *events.Event) error {
	var notice domain.OrderStatusNotice
	if err := evt.UnmarshalPayload(&notice); err != nil {
		// Malformed payloads are dropped, redelivery cannot fix them
		h.log.Warn("dropping undecodable order event",
			zap.String("event_type", evt.EventType),
			zap.Error(err),
		)
		return nil
	}

	h.log.Info("order status event received",
		zap.String("event_type", evt.EventType),
		zap.String("order_id", notice.OrderID.String()),
		zap.String("status", notice.Status),
	)

	return h.notify.Execute(ctx, &notice)
}
