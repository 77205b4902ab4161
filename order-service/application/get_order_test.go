package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/order-service/mocks"
	"github.com/hungersaviour/order-system/shared/models"
)

func TestGetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		orders := mocks.NewMockOrderRepository(t)
		order := storedOrder(t, domain.OrderStatusPreparing)
		orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()

		resp, err := NewGetOrder(orders).Execute(context.Background(), &GetOrderQuery{OrderID: order.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, order.ID.String(), resp.OrderID)
		assert.Equal(t, "PREPARING", resp.Status)
		assert.Equal(t, int64(500), resp.TotalAmount)
	})

	t.Run("not found", func(t *testing.T) {
		orders := mocks.NewMockOrderRepository(t)
		id := models.GenerateUUID()
		orders.EXPECT().FindByID(mock.Anything, id).Return(nil, nil).Once()

		_, err := NewGetOrder(orders).Execute(context.Background(), &GetOrderQuery{OrderID: id.String()})
		require.Error(t, err)

		var notFound *domain.OrderNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		orders := mocks.NewMockOrderRepository(t)

		_, err := NewGetOrder(orders).Execute(context.Background(), &GetOrderQuery{OrderID: "abc"})
		require.Error(t, err)

		var invalid *domain.InvalidRequestError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestListOrders(t *testing.T) {
	t.Run("by user", func(t *testing.T) {
		orders := mocks.NewMockOrderRepository(t)
		stored := []*domain.Order{
			storedOrder(t, domain.OrderStatusDelivered),
			storedOrder(t, domain.OrderStatusPending),
		}
		orders.EXPECT().FindByUserID(mock.Anything, models.ID(testUserID)).Return(stored, nil).Once()

		resp, err := NewListOrders(orders).ByUser(context.Background(), &ListUserOrdersQuery{UserID: testUserID})
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "DELIVERED", resp[0].Status)
		assert.Equal(t, "PENDING", resp[1].Status)
	})

	t.Run("by restaurant empty", func(t *testing.T) {
		orders := mocks.NewMockOrderRepository(t)
		orders.EXPECT().FindByRestaurantID(mock.Anything, models.ID(testRestaurantID)).Return(nil, nil).Once()

		resp, err := NewListOrders(orders).ByRestaurant(context.Background(), &ListRestaurantOrdersQuery{RestaurantID: testRestaurantID})
		require.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("store error", func(t *testing.T) {
		orders := mocks.NewMockOrderRepository(t)
		orders.EXPECT().FindByUserID(mock.Anything, models.ID(testUserID)).
			Return(nil, errors.New("connection reset")).Once()

		_, err := NewListOrders(orders).ByUser(context.Background(), &ListUserOrdersQuery{UserID: testUserID})
		require.Error(t, err)
	})
}
