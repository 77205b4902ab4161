package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/notification-service/domain"
	"github.com/hungersaviour/order-system/notification-service/mocks"
	"github.com/hungersaviour/order-system/shared/models"
)

func testNotice() *domain.OrderStatusNotice {
	return &domain.OrderStatusNotice{
		OrderID:              "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		UserEmail:            "alice@example.com",
		RestaurantName:       "Luigi's",
		RestaurantOwnerEmail: "luigi@example.com",
		Status:               "CONFIRMED",
		TotalAmount:          models.NewMoney(1800, "usd"),
		DeliveryAddress:      "1 Main St",
	}
}

func TestNotifyOrderStatus_SendsBothEmails(t *testing.T) {
	sender := mocks.NewMockEmailSender(t)
	uc := NewNotifyOrderStatus(sender, zap.NewNop())

	var sent []domain.Email
	sender.EXPECT().Send(mock.Anything, mock.AnythingOfType("domain.Email")).
		Run(func(ctx context.Context, email domain.Email) {
			sent = append(sent, email)
		}).Return(nil).Times(2)

	require.NoError(t, uc.Execute(context.Background(), testNotice()))

	require.Len(t, sent, 2)
	assert.Equal(t, "alice@example.com", sent[0].To)
	assert.Equal(t, "luigi@example.com", sent[1].To)
}

func TestNotifyOrderStatus_SkipsMissingRecipients(t *testing.T) {
	t.Run("no customer email", func(t *testing.T) {
		sender := mocks.NewMockEmailSender(t)
		uc := NewNotifyOrderStatus(sender, zap.NewNop())

		notice := testNotice()
		notice.UserEmail = ""

		sender.EXPECT().Send(mock.Anything, mock.AnythingOfType("domain.Email")).
			Run(func(ctx context.Context, email domain.Email) {
				assert.Equal(t, "luigi@example.com", email.To)
			}).Return(nil).Once()

		require.NoError(t, uc.Execute(context.Background(), notice))
	})

	t.Run("no recipients at all", func(t *testing.T) {
		sender := mocks.NewMockEmailSender(t)
		uc := NewNotifyOrderStatus(sender, zap.NewNop())

		notice := testNotice()
		notice.UserEmail = ""
		notice.RestaurantOwnerEmail = ""

		require.NoError(t, uc.Execute(context.Background(), notice))
	})
}

func TestNotifyOrderStatus_SendFailure(t *testing.T) {
	sender := mocks.NewMockEmailSender(t)
	uc := NewNotifyOrderStatus(sender, zap.NewNop())

	sender.EXPECT().Send(mock.Anything, mock.AnythingOfType("domain.Email")).
		Return(errors.New("smtp connection refused")).Once()

	err := uc.Execute(context.Background(), testNotice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send customer notification")
}
