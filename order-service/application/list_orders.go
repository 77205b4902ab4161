package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/shared/models"
)

// ListUserOrdersQuery lists orders placed by one user
type ListUserOrdersQuery struct {
	UserID string `json:"user_id"`
}

// ListRestaurantOrdersQuery lists orders placed at one restaurant
type ListRestaurantOrdersQuery struct {
	RestaurantID string `json:"restaurant_id"`
}

// ListOrders use case for the user and restaurant listings
type ListOrders struct {
	orders domain.OrderRepository
}

// NewListOrders creates a new ListOrders use case
func NewListOrders(orders domain.OrderRepository) *ListOrders {
	return &ListOrders{orders: orders}
}

// ByUser returns the orders placed by a user, newest first
func (uc *ListOrders) ByUser(ctx context.Context, query *ListUserOrdersQuery) ([]*OrderResponse, error) {
	userID, err := models.NewID(query.UserID)
	if err != nil {
		return nil, domain.NewInvalidRequestError("invalid user ID")
	}

	orders, err := uc.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return newOrderResponses(orders), nil
}

// ByRestaurant returns the orders placed at a restaurant, newest first
func (uc *ListOrders) ByRestaurant(ctx context.Context, query *ListRestaurantOrdersQuery) ([]*OrderResponse, error) {
	restaurantID, err := models.NewID(query.RestaurantID)
	if err != nil {
		return nil, domain.NewInvalidRequestError("invalid restaurant ID")
	}

	orders, err := uc.orders.FindByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by restaurant")
	}

	return newOrderResponses(orders), nil
}

func newOrderResponses(orders []*domain.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = newOrderResponse(order)
	}
	return responses
}
