package application

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/shared/events"
	"github.com/hungersaviour/order-system/shared/models"
)

// orderCurrency is the settlement currency for every charge
const orderCurrency = "usd"

// CreateOrderCommand represents the command to place an order
type CreateOrderCommand struct {
	UserID          string            `json:"user_id"`
	RestaurantID    string            `json:"restaurant_id"`
	DeliveryAddress string            `json:"delivery_address"`
	Items           []CreateOrderItem `json:"items"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
}

// CreateOrderItem is one requested line item. UnitPrice is in cents.
type CreateOrderItem struct {
	MenuItemID   string `json:"menu_item_id"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
}

// CreateOrder drives the order placement saga: resolve the user and
// restaurant, persist the order in PENDING, then optionally run the payment
// leg. Every persisted transition is followed by one best-effort status event.
type CreateOrder struct {
	orders         domain.OrderRepository
	users          domain.UserDirectory
	restaurants    domain.RestaurantDirectory
	gateway        domain.PaymentGateway
	eventPublisher *events.BestEffortPublisher
	log            *zap.Logger
}

// NewCreateOrder creates a new CreateOrder use case
func NewCreateOrder(
	orders domain.OrderRepository,
	users domain.UserDirectory,
	restaurants domain.RestaurantDirectory,
	gateway domain.PaymentGateway,
	eventPublisher *events.BestEffortPublisher,
	log *zap.Logger,
) *CreateOrder {
	return &CreateOrder{
		orders:         orders,
		users:          users,
		restaurants:    restaurants,
		gateway:        gateway,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// Execute executes the create order use case
func (uc *CreateOrder) Execute(ctx context.Context, cmd *CreateOrderCommand) (*OrderResponse, error) {
	userID, restaurantID, err := uc.validateCommand(cmd)
	if err != nil {
		return nil, err
	}

	user, restaurant, err := uc.resolveProfiles(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}
	contacts := domain.ContactsFrom(user, restaurant)

	lines := make([]domain.OrderLineInput, len(cmd.Items))
	for i, item := range cmd.Items {
		lines[i] = domain.OrderLineInput{
			MenuItemID:   models.ID(item.MenuItemID),
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			UnitPrice:    models.NewMoney(item.UnitPrice, orderCurrency),
		}
	}

	order, err := domain.PlaceOrder(userID, restaurantID, cmd.DeliveryAddress, lines, orderCurrency, contacts)
	if err != nil {
		return nil, err
	}

	// Durability boundary: after this persist the order id is permanent
	if err := uc.persistAndEmit(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}
	uc.log.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.TotalAmount.String()),
	)

	if cmd.PaymentMethod == "" {
		return newOrderResponse(order), nil
	}

	if err := uc.processPayment(ctx, order, cmd.PaymentMethod, contacts); err != nil {
		return nil, err
	}

	return newOrderResponse(order), nil
}

// processPayment runs the payment leg: PAYMENT_PROCESSING, the gateway call,
// then CONFIRMED plus PREPARING or PAYMENT_FAILED. Each state is durably
// persisted before the next step starts and before any failure is reported.
func (uc *CreateOrder) processPayment(ctx context.Context, order *domain.Order, paymentMethod string, contacts domain.Contacts) error {
	if err := order.BeginPaymentProcessing(contacts); err != nil {
		return err
	}
	if err := uc.persistAndEmit(ctx, order); err != nil {
		return errors.Wrap(err, "failed to save order")
	}

	result, chargeErr := uc.gateway.Charge(ctx, &domain.ChargeRequest{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Amount:        order.TotalAmount,
		PaymentMethod: paymentMethod,
	})

	if chargeErr != nil || result.Status != domain.ChargeStatusSuccess {
		message := "payment gateway error"
		if chargeErr != nil {
			uc.log.Error("payment gateway call failed",
				zap.String("order_id", order.ID.String()),
				zap.Error(chargeErr),
			)
		} else {
			message = result.Message
		}

		if err := order.FailPayment(contacts); err != nil {
			return err
		}
		if err := uc.persistAndEmit(ctx, order); err != nil {
			return errors.Wrap(err, "failed to save order")
		}
		return &domain.PaymentFailedError{Message: message}
	}

	if err := order.ConfirmPayment(result.PaymentID, contacts); err != nil {
		return err
	}
	if err := uc.persistAndEmit(ctx, order); err != nil {
		return errors.Wrap(err, "failed to save order")
	}

	// Payment cleared, notify the kitchen immediately
	if err := order.StartPreparing(contacts); err != nil {
		return err
	}
	if err := uc.persistAndEmit(ctx, order); err != nil {
		return errors.Wrap(err, "failed to save order")
	}

	uc.log.Info("order confirmed and sent to kitchen",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_id", order.PaymentID),
	)
	return nil
}

// persistAndEmit saves the order, then hands its recorded events to the soft
// channel. A failed persist emits nothing.
func (uc *CreateOrder) persistAndEmit(ctx context.Context, order *domain.Order) error {
	if err := uc.orders.Save(ctx, order); err != nil {
		return err
	}
	uc.eventPublisher.Publish(ctx, order.Events()...)
	order.ClearEvents()
	return nil
}

// resolveProfiles fetches the user and restaurant profiles concurrently.
// Both lookups must finish before order construction; either missing fails
// the call with no order row created.
func (uc *CreateOrder) resolveProfiles(ctx context.Context, userID, restaurantID models.ID) (*domain.UserProfile, *domain.RestaurantProfile, error) {
	var (
		user       *domain.UserProfile
		restaurant *domain.RestaurantProfile
	)

	gr, ctx := errgroup.WithContext(ctx)
	gr.Go(func() error {
		var err error
		user, err = uc.users.GetProfile(ctx, userID)
		return err
	})
	gr.Go(func() error {
		var err error
		restaurant, err = uc.restaurants.GetProfile(ctx, restaurantID)
		return err
	})
	if err := gr.Wait(); err != nil {
		return nil, nil, err
	}

	if user == nil {
		return nil, nil, &domain.DependencyNotFoundError{Dependency: "user", ID: userID}
	}
	if restaurant == nil {
		return nil, nil, &domain.DependencyNotFoundError{Dependency: "restaurant", ID: restaurantID}
	}
	return user, restaurant, nil
}

func (uc *CreateOrder) validateCommand(cmd *CreateOrderCommand) (models.ID, models.ID, error) {
	if cmd.UserID == "" {
		return "", "", domain.NewInvalidRequestError("user ID is required")
	}
	if cmd.RestaurantID == "" {
		return "", "", domain.NewInvalidRequestError("restaurant ID is required")
	}
	if cmd.DeliveryAddress == "" {
		return "", "", domain.NewInvalidRequestError("delivery address is required")
	}
	if len(cmd.Items) == 0 {
		return "", "", domain.NewInvalidRequestError("at least one item is required")
	}

	userID, err := models.NewID(cmd.UserID)
	if err != nil {
		return "", "", domain.NewInvalidRequestError("invalid user ID")
	}
	restaurantID, err := models.NewID(cmd.RestaurantID)
	if err != nil {
		return "", "", domain.NewInvalidRequestError("invalid restaurant ID")
	}
	return userID, restaurantID, nil
}
