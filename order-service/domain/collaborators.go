package domain

import (
	"context"

	"github.com/hungersaviour/order-system/shared/models"
)

// UserProfile is the contact profile served by the user service
type UserProfile struct {
	ID          models.ID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
}

// RestaurantProfile is the profile served by the restaurant service
type RestaurantProfile struct {
	ID         models.ID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	OwnerEmail string    `json:"owner_email"`
	Active     bool      `json:"active"`
}

// UserDirectory resolves user contact profiles. Returns nil when the user
// does not exist.
type UserDirectory interface {
	GetProfile(ctx context.Context, userID models.ID) (*UserProfile, error)
}

// RestaurantDirectory resolves restaurant profiles. Returns nil when the
// restaurant does not exist.
type RestaurantDirectory interface {
	GetProfile(ctx context.Context, restaurantID models.ID) (*RestaurantProfile, error)
}

// ChargeStatus is the settlement outcome reported by the payment service
type ChargeStatus string

const (
	ChargeStatusSuccess ChargeStatus = "SUCCESS"
	ChargeStatusFailed  ChargeStatus = "FAILED"
)

// ChargeRequest is the payment submission for one order
type ChargeRequest struct {
	OrderID       models.ID    `json:"order_id"`
	UserID        models.ID    `json:"user_id"`
	Amount        models.Money `json:"amount"`
	PaymentMethod string       `json:"payment_method"`
}

// ChargeResult is the settlement outcome
type ChargeResult struct {
	PaymentID string       `json:"payment_id"`
	Status    ChargeStatus `json:"status"`
	Message   string       `json:"message"`
}

// PaymentGateway submits a charge and reports the settlement outcome
type PaymentGateway interface {
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}

// Contacts is the copy-on-read snapshot of user and restaurant contact fields
// taken at the time of the originating call. Status events carry this snapshot
// so later catalog edits cannot rewrite historical notifications. Fields stay
// empty when an enrichment lookup failed; delivery proceeds anyway.
type Contacts struct {
	UserEmail            string
	RestaurantName       string
	RestaurantOwnerEmail string
}

// ContactsFrom builds the snapshot from resolved profiles, either of which
// may be nil
func ContactsFrom(user *UserProfile, restaurant *RestaurantProfile) Contacts {
	var c Contacts
	if user != nil {
		c.UserEmail = user.Email
	}
	if restaurant != nil {
		c.RestaurantName = restaurant.Name
		c.RestaurantOwnerEmail = restaurant.OwnerEmail
	}
	return c
}
