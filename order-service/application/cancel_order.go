package application

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/shared/events"
	"github.com/hungersaviour/order-system/shared/models"
)

// CancelOrderCommand represents the command to cancel an order
type CancelOrderCommand struct {
	OrderID string `json:"order_id"`
}

// CancelOrder moves an order to CANCELLED. The cancellation may race an
// in-flight payment call for the same order; last write wins at the store and
// no attempt is made to abort the payment.
type CancelOrder struct {
	orders         domain.OrderRepository
	contacts       contactResolver
	eventPublisher *events.BestEffortPublisher
	log            *zap.Logger
}

// NewCancelOrder creates a new CancelOrder use case
func NewCancelOrder(
	orders domain.OrderRepository,
	users domain.UserDirectory,
	restaurants domain.RestaurantDirectory,
	eventPublisher *events.BestEffortPublisher,
	log *zap.Logger,
) *CancelOrder {
	return &CancelOrder{
		orders:         orders,
		contacts:       contactResolver{users: users, restaurants: restaurants, log: log},
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// Execute executes the cancel order use case
func (uc *CancelOrder) Execute(ctx context.Context, cmd *CancelOrderCommand) (*OrderResponse, error) {
	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return nil, domain.NewInvalidRequestError("invalid order ID")
	}

	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		return nil, &domain.OrderNotFoundError{ID: orderID}
	}

	if err := order.Cancel(domain.Contacts{}); err != nil {
		return nil, err
	}
	if err := uc.orders.Save(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}
	uc.log.Info("order cancelled", zap.String("order_id", order.ID.String()))

	order.EnrichEvents(uc.contacts.resolveBestEffort(ctx, order))
	uc.eventPublisher.Publish(ctx, order.Events()...)
	order.ClearEvents()

	return newOrderResponse(order), nil
}
