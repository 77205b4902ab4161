package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/order-service/mocks"
	"github.com/hungersaviour/order-system/shared/events"
	"github.com/hungersaviour/order-system/shared/models"
)

type cancelOrderFixture struct {
	uc          *CancelOrder
	orders      *mocks.MockOrderRepository
	users       *mocks.MockUserDirectory
	restaurants *mocks.MockRestaurantDirectory
	publisher   *mocks.MockPublisher
}

func newCancelOrderFixture(t *testing.T) *cancelOrderFixture {
	f := &cancelOrderFixture{
		orders:      mocks.NewMockOrderRepository(t),
		users:       mocks.NewMockUserDirectory(t),
		restaurants: mocks.NewMockRestaurantDirectory(t),
		publisher:   mocks.NewMockPublisher(t),
	}
	f.uc = NewCancelOrder(
		f.orders, f.users, f.restaurants,
		events.NewBestEffortPublisher(f.publisher, zap.NewNop()),
		zap.NewNop(),
	)
	return f
}

func TestCancelOrder_Success(t *testing.T) {
	f := newCancelOrderFixture(t)
	order := storedOrder(t, domain.OrderStatusPaymentProcessing)

	f.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
	f.orders.EXPECT().Save(mock.Anything, order).Return(nil).Once()
	f.users.EXPECT().GetProfile(mock.Anything, order.UserID).Return(testUserProfile(), nil).Once()
	f.restaurants.EXPECT().GetProfile(mock.Anything, order.RestaurantID).Return(testRestaurantProfile(), nil).Once()

	var published []*events.Event
	f.publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, evts ...*events.Event) {
			published = append(published, evts...)
		}).Return(nil).Once()

	resp, err := f.uc.Execute(context.Background(), &CancelOrderCommand{OrderID: order.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)

	require.Len(t, published, 1)
	assert.Equal(t, events.OrderCancelledEvent, published[0].EventType)
	data := published[0].Data.(domain.OrderStatusData)
	assert.Equal(t, domain.OrderStatusCancelled, data.Status)
	assert.Equal(t, "alice@example.com", data.UserEmail)
}

func TestCancelOrder_AlreadyCancelled(t *testing.T) {
	f := newCancelOrderFixture(t)
	order := storedOrder(t, domain.OrderStatusCancelled)

	f.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()

	_, err := f.uc.Execute(context.Background(), &CancelOrderCommand{OrderID: order.ID.String()})
	require.Error(t, err)

	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.OrderStatusCancelled, transitionErr.From)
	assert.Equal(t, domain.OrderStatusCancelled, transitionErr.To)
}

func TestCancelOrder_DeliveredOrderRejected(t *testing.T) {
	f := newCancelOrderFixture(t)
	order := storedOrder(t, domain.OrderStatusDelivered)

	f.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()

	_, err := f.uc.Execute(context.Background(), &CancelOrderCommand{OrderID: order.ID.String()})
	require.Error(t, err)

	var transitionErr *domain.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestCancelOrder_NotFound(t *testing.T) {
	f := newCancelOrderFixture(t)
	id := models.GenerateUUID()

	f.orders.EXPECT().FindByID(mock.Anything, id).Return(nil, nil).Once()

	_, err := f.uc.Execute(context.Background(), &CancelOrderCommand{OrderID: id.String()})
	require.Error(t, err)

	var notFound *domain.OrderNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCancelOrder_InvalidID(t *testing.T) {
	f := newCancelOrderFixture(t)

	_, err := f.uc.Execute(context.Background(), &CancelOrderCommand{OrderID: "nope"})
	require.Error(t, err)

	var invalid *domain.InvalidRequestError
	assert.ErrorAs(t, err, &invalid)
}
