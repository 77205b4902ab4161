package application

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hungersaviour/order-system/order-service/domain"
)

// contactResolver resolves user and restaurant contact fields for event
// enrichment, tolerating failure of either lookup
type contactResolver struct {
	users       domain.UserDirectory
	restaurants domain.RestaurantDirectory
	log         *zap.Logger
}

func (r *contactResolver) resolveBestEffort(ctx context.Context, order *domain.Order) domain.Contacts {
	var (
		user       *domain.UserProfile
		restaurant *domain.RestaurantProfile
	)

	gr, gctx := errgroup.WithContext(ctx)
	gr.Go(func() error {
		var err error
		if user, err = r.users.GetProfile(gctx, order.UserID); err != nil {
			r.log.Warn("user lookup failed during enrichment",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
		return nil
	})
	gr.Go(func() error {
		var err error
		if restaurant, err = r.restaurants.GetProfile(gctx, order.RestaurantID); err != nil {
			r.log.Warn("restaurant lookup failed during enrichment",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
		return nil
	})
	_ = gr.Wait()

	return domain.ContactsFrom(user, restaurant)
}
