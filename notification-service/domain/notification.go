package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/hungersaviour/order-system/shared/models"
)

// OrderStatusNotice is the decoded order status event payload. Contact fields
// may be empty when enrichment failed upstream; the matching email is skipped.
type OrderStatusNotice struct {
	OrderID              models.ID    `json:"order_id"`
	UserID               models.ID    `json:"user_id"`
	UserEmail            string       `json:"user_email"`
	RestaurantID         models.ID    `json:"restaurant_id"`
	RestaurantName       string       `json:"restaurant_name"`
	RestaurantOwnerEmail string       `json:"restaurant_owner_email"`
	Status               string       `json:"status"`
	TotalAmount          models.Money `json:"total_amount"`
	DeliveryAddress      string       `json:"delivery_address"`
}

// Email is a rendered message ready for delivery
type Email struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers rendered emails
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}

var statusDisplayNames = map[string]string{
	"PENDING":            "Order Received",
	"PAYMENT_PROCESSING": "Processing Payment",
	"CONFIRMED":          "Order Confirmed",
	"PREPARING":          "Preparing Your Order",
	"OUT_FOR_DELIVERY":   "Out for Delivery",
	"DELIVERED":          "Delivered",
	"CANCELLED":          "Order Cancelled",
	"PAYMENT_FAILED":     "Payment Failed",
}

// StatusDisplayName maps a raw status to its customer-facing name
func StatusDisplayName(status string) string {
	if name, ok := statusDisplayNames[status]; ok {
		return name
	}
	return "Status Update"
}

var customerIntros = map[string]string{
	"PENDING":          "We have received your order!",
	"CONFIRMED":        "Great news! Your order has been confirmed and payment was successful.",
	"PREPARING":        "Your order is being prepared by the restaurant.",
	"OUT_FOR_DELIVERY": "Your order is on its way to you!",
	"DELIVERED":        "Your order has been delivered. Enjoy your meal!",
	"CANCELLED":        "Your order has been cancelled.",
	"PAYMENT_FAILED":   "Unfortunately, your payment could not be processed. Please try again.",
}

// RenderCustomerEmail builds the notification sent to the ordering customer
func RenderCustomerEmail(n *OrderStatusNotice) Email {
	intro, ok := customerIntros[n.Status]
	if !ok {
		intro = "Your order status has been updated."
	}

	var body strings.Builder
	body.WriteString("Dear Customer,\n\n")
	body.WriteString(intro + "\n\n")
	body.WriteString("Order Details:\n")
	body.WriteString("Order ID: #" + n.OrderID.String() + "\n")
	body.WriteString("Restaurant: " + n.RestaurantName + "\n")
	body.WriteString("Status: " + StatusDisplayName(n.Status) + "\n")
	body.WriteString("Total Amount: " + formatAmount(n.TotalAmount) + "\n")
	if n.DeliveryAddress != "" {
		body.WriteString("Delivery Address: " + n.DeliveryAddress + "\n")
	}
	body.WriteString("\nThank you for choosing Hunger Saviour!\n\n")
	body.WriteString("Best regards,\nHunger Saviour Team")

	return Email{
		To:      n.UserEmail,
		Subject: fmt.Sprintf("Order #%s - %s", n.OrderID, StatusDisplayName(n.Status)),
		Body:    body.String(),
	}
}

// RenderOwnerEmail builds the notification sent to the restaurant owner
func RenderOwnerEmail(n *OrderStatusNotice) Email {
	var intro string
	switch n.Status {
	case "CONFIRMED", "PREPARING":
		intro = "You have a new order to prepare!"
	case "CANCELLED":
		intro = "An order has been cancelled."
	default:
		intro = "Order status update notification."
	}

	var body strings.Builder
	body.WriteString("Dear Restaurant Partner,\n\n")
	body.WriteString(intro + "\n\n")
	body.WriteString("Order Details:\n")
	body.WriteString("Order ID: #" + n.OrderID.String() + "\n")
	body.WriteString("Status: " + StatusDisplayName(n.Status) + "\n")
	body.WriteString("Total Amount: " + formatAmount(n.TotalAmount) + "\n")
	body.WriteString("Delivery Address: " + n.DeliveryAddress + "\n\n")
	if n.Status == "PREPARING" {
		body.WriteString("Please start preparing this order immediately.\n\n")
	}
	body.WriteString("Please log in to your dashboard to view full order details.\n\n")
	body.WriteString("Best regards,\nHunger Saviour Team")

	return Email{
		To:      n.RestaurantOwnerEmail,
		Subject: fmt.Sprintf("New Order #%s - %s", n.OrderID, StatusDisplayName(n.Status)),
		Body:    body.String(),
	}
}

func formatAmount(m models.Money) string {
	return fmt.Sprintf("$%d.%02d", m.Amount/100, m.Amount%100)
}
