package application

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/notification-service/domain"
)

// NotifyOrderStatus sends the customer and restaurant-owner emails for one
// order status event. A send failure is returned so the queue redelivers the
// message; a resend may duplicate the email that already went out, which is
// acceptable for notifications.
type NotifyOrderStatus struct {
	sender domain.EmailSender
	log    *zap.Logger
}

// NewNotifyOrderStatus creates a new NotifyOrderStatus use case
func NewNotifyOrderStatus(sender domain.EmailSender, log *zap.Logger) *NotifyOrderStatus {
	return &NotifyOrderStatus{
		sender: sender,
		log:    log,
	}
}

// Execute executes the notify order status use case
func (uc *NotifyOrderStatus) Execute(ctx context.Context, notice *domain.OrderStatusNotice) error {
	if notice.UserEmail != "" {
		email := domain.RenderCustomerEmail(notice)
		if err := uc.sender.Send(ctx, email); err != nil {
			return errors.Wrap(err, "failed to send customer notification")
		}
		uc.log.Info("customer notification sent",
			zap.String("order_id", notice.OrderID.String()),
			zap.String("to", email.To),
		)
	}

	if notice.RestaurantOwnerEmail != "" {
		email := domain.RenderOwnerEmail(notice)
		if err := uc.sender.Send(ctx, email); err != nil {
			return errors.Wrap(err, "failed to send restaurant notification")
		}
		uc.log.Info("restaurant notification sent",
			zap.String("order_id", notice.OrderID.String()),
			zap.String("to", email.To),
		)
	}

	return nil
}
