package domain

// OrderStatus is the closed set of order states. Raw strings from the outside
// world must go through ParseOrderStatus before touching an order.
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "PENDING"
	OrderStatusPaymentProcessing OrderStatus = "PAYMENT_PROCESSING"
	OrderStatusConfirmed         OrderStatus = "CONFIRMED"
	OrderStatusPreparing         OrderStatus = "PREPARING"
	OrderStatusOutForDelivery    OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered         OrderStatus = "DELIVERED"
	OrderStatusPaymentFailed     OrderStatus = "PAYMENT_FAILED"
	OrderStatusCancelled         OrderStatus = "CANCELLED"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:           {},
	OrderStatusPaymentProcessing: {},
	OrderStatusConfirmed:         {},
	OrderStatusPreparing:         {},
	OrderStatusOutForDelivery:    {},
	OrderStatusDelivered:         {},
	OrderStatusPaymentFailed:     {},
	OrderStatusCancelled:         {},
}

// ParseOrderStatus validates a raw status value
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if _, ok := orderStatuses[status]; !ok {
		return "", NewInvalidRequestError("unknown order status: " + raw)
	}
	return status, nil
}

// IsTerminal reports whether no further transitions are accepted.
// PAYMENT_FAILED is deliberately not terminal: a failed order may still be
// cancelled or resubmitted by an external flow.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}
