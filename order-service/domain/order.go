package domain

import (
	"context"

	"github.com/hungersaviour/order-system/shared/events"
	"github.com/hungersaviour/order-system/shared/models"
)

// OrderLine is one line of an order. Name and unit price are denormalized
// snapshots taken at order time and are never re-fetched from the catalog.
type OrderLine struct {
	MenuItemID   models.ID
	MenuItemName string
	Quantity     int
	UnitPrice    models.Money
	Subtotal     models.Money
}

// OrderLineInput is the caller-supplied shape of a line before validation
type OrderLineInput struct {
	MenuItemID   models.ID
	MenuItemName string
	Quantity     int
	UnitPrice    models.Money
}

// Order aggregate root. All status transitions go through the methods below;
// each accepted transition records exactly one status event.
type Order struct {
	ID              models.ID
	UserID          models.ID
	RestaurantID    models.ID
	DeliveryAddress string
	Status          OrderStatus
	TotalAmount     models.Money
	PaymentID       string
	Lines           []OrderLine
	Timestamps      models.Timestamps
	Version         models.Version

	events []*events.Event
}

// PlaceOrder builds a new order in PENDING. The total is recomputed from the
// lines; a client-supplied total is never trusted.
func PlaceOrder(
	userID, restaurantID models.ID,
	deliveryAddress string,
	lineInputs []OrderLineInput,
	currency string,
	contacts Contacts,
) (*Order, error) {
	if len(lineInputs) == 0 {
		return nil, NewInvalidRequestError("order needs at least one line item")
	}

	lines := make([]OrderLine, len(lineInputs))
	total := models.NewMoney(0, currency)
	for i, in := range lineInputs {
		if in.Quantity <= 0 {
			return nil, NewInvalidRequestError("quantity must be positive")
		}
		if in.UnitPrice.IsNegative() {
			return nil, NewInvalidRequestError("unit price must not be negative")
		}

		subtotal := in.UnitPrice.MultiplyBy(in.Quantity)
		var err error
		if total, err = total.Add(subtotal); err != nil {
			return nil, NewInvalidRequestError("line items must share one currency")
		}

		lines[i] = OrderLine{
			MenuItemID:   in.MenuItemID,
			MenuItemName: in.MenuItemName,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			Subtotal:     subtotal,
		}
	}

	order := &Order{
		ID:              models.GenerateUUID(),
		UserID:          userID,
		RestaurantID:    restaurantID,
		DeliveryAddress: deliveryAddress,
		Status:          OrderStatusPending,
		TotalAmount:     total,
		Lines:           lines,
		Timestamps:      models.NewTimestamps(),
		Version:         models.NewVersion(),
	}

	order.recordStatusEvent(events.OrderPlacedEvent, contacts)
	return order, nil
}

// BeginPaymentProcessing moves a pending order into PAYMENT_PROCESSING
func (o *Order) BeginPaymentProcessing(contacts Contacts) error {
	if o.Status != OrderStatusPending {
		return &InvalidTransitionError{From: o.Status, To: OrderStatusPaymentProcessing}
	}
	o.transition(OrderStatusPaymentProcessing)
	o.recordStatusEvent(events.OrderPaymentProcessingEvent, contacts)
	return nil
}

// ConfirmPayment records the settlement id and moves the order to CONFIRMED
func (o *Order) ConfirmPayment(paymentID string, contacts Contacts) error {
	if o.Status != OrderStatusPaymentProcessing {
		return &InvalidTransitionError{From: o.Status, To: OrderStatusConfirmed}
	}
	o.PaymentID = paymentID
	o.transition(OrderStatusConfirmed)
	o.recordStatusEvent(events.OrderConfirmedEvent, contacts)
	return nil
}

// StartPreparing moves a confirmed order to PREPARING, payment cleared means
// the kitchen is notified immediately
func (o *Order) StartPreparing(contacts Contacts) error {
	if o.Status != OrderStatusConfirmed {
		return &InvalidTransitionError{From: o.Status, To: OrderStatusPreparing}
	}
	o.transition(OrderStatusPreparing)
	o.recordStatusEvent(events.OrderPreparingEvent, contacts)
	return nil
}

// FailPayment moves the order to PAYMENT_FAILED. The row stays queryable.
func (o *Order) FailPayment(contacts Contacts) error {
	if o.Status.IsTerminal() {
		return &InvalidTransitionError{From: o.Status, To: OrderStatusPaymentFailed}
	}
	o.transition(OrderStatusPaymentFailed)
	o.recordStatusEvent(events.OrderPaymentFailedEvent, contacts)
	return nil
}

// UpdateStatus applies an externally driven transition. Anything is accepted
// except leaving a terminal state.
func (o *Order) UpdateStatus(newStatus OrderStatus, contacts Contacts) error {
	if o.Status.IsTerminal() {
		return &InvalidTransitionError{From: o.Status, To: newStatus}
	}
	o.transition(newStatus)
	o.recordStatusEvent(events.OrderStatusUpdatedEvent, contacts)
	return nil
}

// Cancel moves the order to CANCELLED unconditionally, even mid-payment
func (o *Order) Cancel(contacts Contacts) error {
	if o.Status.IsTerminal() {
		return &InvalidTransitionError{From: o.Status, To: OrderStatusCancelled}
	}
	o.transition(OrderStatusCancelled)
	o.recordStatusEvent(events.OrderCancelledEvent, contacts)
	return nil
}

func (o *Order) transition(newStatus OrderStatus) {
	o.Status = newStatus
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()
}

// EnrichEvents fills contact fields on recorded events whose snapshot was
// taken before the enrichment lookups resolved. Used by flows that persist
// first so a down directory cannot block the status change.
func (o *Order) EnrichEvents(contacts Contacts) {
	for _, evt := range o.events {
		if data, ok := evt.Data.(OrderStatusData); ok {
			data.UserEmail = contacts.UserEmail
			data.RestaurantName = contacts.RestaurantName
			data.RestaurantOwnerEmail = contacts.RestaurantOwnerEmail
			evt.Data = data
		}
	}
}

// Events returns recorded domain events
func (o *Order) Events() []*events.Event {
	return o.events
}

// ClearEvents clears recorded domain events
func (o *Order) ClearEvents() {
	o.events = make([]*events.Event, 0)
}

func (o *Order) recordStatusEvent(eventType string, contacts Contacts) {
	o.events = append(o.events, events.NewEvent(o.ID, eventType, OrderStatusData{
		OrderID:              o.ID,
		UserID:               o.UserID,
		UserEmail:            contacts.UserEmail,
		RestaurantID:         o.RestaurantID,
		RestaurantName:       contacts.RestaurantName,
		RestaurantOwnerEmail: contacts.RestaurantOwnerEmail,
		Status:               o.Status,
		TotalAmount:          o.TotalAmount,
		DeliveryAddress:      o.DeliveryAddress,
	}))
}

// OrderStatusData is the immutable snapshot published for every persisted
// status transition. It is transport only and never stored.
type OrderStatusData struct {
	OrderID              models.ID    `json:"order_id"`
	UserID               models.ID    `json:"user_id"`
	UserEmail            string       `json:"user_email"`
	RestaurantID         models.ID    `json:"restaurant_id"`
	RestaurantName       string       `json:"restaurant_name"`
	RestaurantOwnerEmail string       `json:"restaurant_owner_email"`
	Status               OrderStatus  `json:"status"`
	TotalAmount          models.Money `json:"total_amount"`
	DeliveryAddress      string       `json:"delivery_address"`
}

// OrderRepository owns durability of order records. FindByID returns nil when
// the order does not exist.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id models.ID) (*Order, error)
	FindByUserID(ctx context.Context, userID models.ID) ([]*Order, error)
	FindByRestaurantID(ctx context.Context, restaurantID models.ID) ([]*Order, error)
}
