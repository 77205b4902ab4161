package application

import (
	"time"

	"github.com/hungersaviour/order-system/order-service/domain"
)

// OrderResponse is the order snapshot returned by the order use cases
type OrderResponse struct {
	OrderID         string              `json:"order_id"`
	UserID          string              `json:"user_id"`
	RestaurantID    string              `json:"restaurant_id"`
	DeliveryAddress string              `json:"delivery_address"`
	Status          string              `json:"status"`
	TotalAmount     int64               `json:"total_amount"`
	Currency        string              `json:"currency"`
	PaymentID       string              `json:"payment_id,omitempty"`
	Lines           []OrderLineResponse `json:"lines"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

// OrderLineResponse is one order line in an OrderResponse
type OrderLineResponse struct {
	MenuItemID   string `json:"menu_item_id"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	Subtotal     int64  `json:"subtotal"`
}

func newOrderResponse(order *domain.Order) *OrderResponse {
	lines := make([]OrderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = OrderLineResponse{
			MenuItemID:   line.MenuItemID.String(),
			MenuItemName: line.MenuItemName,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice.Amount,
			Subtotal:     line.Subtotal.Amount,
		}
	}

	return &OrderResponse{
		OrderID:         order.ID.String(),
		UserID:          order.UserID.String(),
		RestaurantID:    order.RestaurantID.String(),
		DeliveryAddress: order.DeliveryAddress,
		Status:          order.Status.String(),
		TotalAmount:     order.TotalAmount.Amount,
		Currency:        order.TotalAmount.Currency,
		PaymentID:       order.PaymentID,
		Lines:           lines,
		CreatedAt:       order.Timestamps.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.Timestamps.UpdatedAt.Format(time.RFC3339),
	}
}
