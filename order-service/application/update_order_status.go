package application

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/shared/events"
	"github.com/hungersaviour/order-system/shared/models"
)

// UpdateOrderStatusCommand represents an externally driven status change
type UpdateOrderStatusCommand struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// UpdateOrderStatus applies a status change to a non-terminal order. The
// persist happens before the enrichment lookups so a down directory can delay
// the notification but never the status change itself.
type UpdateOrderStatus struct {
	orders         domain.OrderRepository
	contacts       contactResolver
	eventPublisher *events.BestEffortPublisher
	log            *zap.Logger
}

// NewUpdateOrderStatus creates a new UpdateOrderStatus use case
func NewUpdateOrderStatus(
	orders domain.OrderRepository,
	users domain.UserDirectory,
	restaurants domain.RestaurantDirectory,
	eventPublisher *events.BestEffortPublisher,
	log *zap.Logger,
) *UpdateOrderStatus {
	return &UpdateOrderStatus{
		orders:         orders,
		contacts:       contactResolver{users: users, restaurants: restaurants, log: log},
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// Execute executes the update order status use case
func (uc *UpdateOrderStatus) Execute(ctx context.Context, cmd *UpdateOrderStatusCommand) (*OrderResponse, error) {
	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return nil, domain.NewInvalidRequestError("invalid order ID")
	}

	newStatus, err := domain.ParseOrderStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		return nil, &domain.OrderNotFoundError{ID: orderID}
	}

	if err := order.UpdateStatus(newStatus, domain.Contacts{}); err != nil {
		return nil, err
	}
	if err := uc.orders.Save(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}
	uc.log.Info("order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.Status.String()),
	)

	// Enrichment is best effort; the event goes out with whatever resolved
	order.EnrichEvents(uc.contacts.resolveBestEffort(ctx, order))
	uc.eventPublisher.Publish(ctx, order.Events()...)
	order.ClearEvents()

	return newOrderResponse(order), nil
}
