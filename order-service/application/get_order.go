package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/shared/models"
)

// GetOrderQuery represents the query to get an order
type GetOrderQuery struct {
	OrderID string `json:"order_id"`
}

// GetOrder use case
type GetOrder struct {
	orders domain.OrderRepository
}

// NewGetOrder creates a new GetOrder use case
func NewGetOrder(orders domain.OrderRepository) *GetOrder {
	return &GetOrder{orders: orders}
}

// Execute executes the get order use case
func (uc *GetOrder) Execute(ctx context.Context, query *GetOrderQuery) (*OrderResponse, error) {
	orderID, err := models.NewID(query.OrderID)
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

	return newOrderResponse(order), nil
}
