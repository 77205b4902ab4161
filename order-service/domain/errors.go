package domain

import (
	"fmt"

	"github.com/hungersaviour/order-system/shared/models"
)

// InvalidRequestError means the caller sent a malformed order request.
// Nothing was persisted.
type InvalidRequestError struct {
	Reason string
}

func NewInvalidRequestError(reason string) *InvalidRequestError {
	return &InvalidRequestError{Reason: reason}
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// DependencyNotFoundError means a referenced user or restaurant does not
// resolve. No order row was created.
type DependencyNotFoundError struct {
	Dependency string
	ID         models.ID
}

func (e *DependencyNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Dependency, e.ID)
}

// OrderNotFoundError means the order id does not exist
type OrderNotFoundError struct {
	ID models.ID
}

func (e *OrderNotFoundError) Error() string {
	return "order not found: " + e.ID.String()
}

// InvalidTransitionError means a mutation was attempted on a terminal order
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// DependencyUnavailableError wraps a timeout or transport failure from a
// collaborator. Never retried here; retries belong to the caller.
type DependencyUnavailableError struct {
	Dependency string
	Err        error
}

func (e *DependencyUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyUnavailableError) Unwrap() error {
	return e.Err
}

// PaymentFailedError means the gateway declined or errored. The order was
// persisted in PAYMENT_FAILED before this error was raised.
type PaymentFailedError struct {
	Message string
}

func (e *PaymentFailedError) Error() string {
	if e.Message == "" {
		return "payment failed"
	}
	return "payment failed: " + e.Message
}
