package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/notification-service/application"
	"github.com/hungersaviour/order-system/notification-service/handlers"
	"github.com/hungersaviour/order-system/notification-service/infrastructure"
	sharedinfra "github.com/hungersaviour/order-system/shared/infrastructure"
	"github.com/hungersaviour/order-system/shared/logger"
	"github.com/hungersaviour/order-system/shared/telemetry"
)

type Dependencies struct {
	Log *zap.Logger

	EmailSender       *infrastructure.SMTPEmailSender
	NotifyOrderStatus *application.NotifyOrderStatus
	OrderEvents       *handlers.OrderEventsHandler

	Subscriber *sharedinfra.SQSSubscriberAdapter
	Telemetry  *telemetry.Telemetry
}

func BuildDependencies(cfg *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	deps.Log = log

	subscriber, err := sharedinfra.NewSQSSubscriberAdapter(cfg.AWS.SQSQueueURL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.Subscriber = subscriber

	deps.EmailSender = infrastructure.NewSMTPEmailSender(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From,
	)
	deps.NotifyOrderStatus = application.NewNotifyOrderStatus(deps.EmailSender, log)
	deps.OrderEvents = handlers.NewOrderEventsHandler(deps.NotifyOrderStatus, log)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.Subscriber != nil {
		if err := d.Subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close subscriber: %w", err))
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
