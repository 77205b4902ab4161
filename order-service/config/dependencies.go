package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/order-service/application"
	"github.com/hungersaviour/order-system/order-service/handlers"
	"github.com/hungersaviour/order-system/order-service/infrastructure"
	"github.com/hungersaviour/order-system/shared/events"
	sharedinfra "github.com/hungersaviour/order-system/shared/infrastructure"
	"github.com/hungersaviour/order-system/shared/logger"
	"github.com/hungersaviour/order-system/shared/telemetry"
)

type Dependencies struct {
	Log *zap.Logger
	DB  *sqlx.DB

	// Repositories and clients
	OrderRepository *infrastructure.PostgresOrderRepository
	Users           *infrastructure.HTTPUserDirectory
	Restaurants     *infrastructure.HTTPRestaurantDirectory
	PaymentGateway  *infrastructure.HTTPPaymentGateway

	// Use cases
	CreateOrder       *application.CreateOrder
	GetOrder          *application.GetOrder
	UpdateOrderStatus *application.UpdateOrderStatus
	CancelOrder       *application.CancelOrder
	ListOrders        *application.ListOrders

	// HTTP handlers
	OrderHandlers *handlers.OrderHandlers

	// Infrastructure
	EventPublisher *sharedinfra.SNSPublisherAdapter
	Telemetry      *telemetry.Telemetry
}

func BuildDependencies(ctx context.Context, cfg *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	deps.Log = log

	db, err := sqlx.Connect("postgres", cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	deps.DB = db

	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(ctx, cfg.AWS.SNSTopicArn, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher
	softPublisher := events.NewBestEffortPublisher(eventPublisher, log)

	deps.OrderRepository = infrastructure.NewPostgresOrderRepository(db)
	deps.Users = infrastructure.NewHTTPUserDirectory(cfg.Services.UserURL, cfg.Services.LookupTimeout)
	deps.Restaurants = infrastructure.NewHTTPRestaurantDirectory(cfg.Services.RestaurantURL, cfg.Services.LookupTimeout)
	deps.PaymentGateway = infrastructure.NewHTTPPaymentGateway(cfg.Services.PaymentURL, cfg.Services.PaymentTimeout)

	deps.CreateOrder = application.NewCreateOrder(
		deps.OrderRepository, deps.Users, deps.Restaurants, deps.PaymentGateway, softPublisher, log,
	)
	deps.GetOrder = application.NewGetOrder(deps.OrderRepository)
	deps.UpdateOrderStatus = application.NewUpdateOrderStatus(
		deps.OrderRepository, deps.Users, deps.Restaurants, softPublisher, log,
	)
	deps.CancelOrder = application.NewCancelOrder(
		deps.OrderRepository, deps.Users, deps.Restaurants, softPublisher, log,
	)
	deps.ListOrders = application.NewListOrders(deps.OrderRepository)

	deps.OrderHandlers = handlers.NewOrderHandlers(
		deps.CreateOrder,
		deps.GetOrder,
		deps.UpdateOrderStatus,
		deps.CancelOrder,
		deps.ListOrders,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.Log != nil {
		_ = d.Log.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
