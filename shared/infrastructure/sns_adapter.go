package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/shared/events"
)

// SNSPublisherAdapter wires an SNS client into the events.Publisher interface
type SNSPublisherAdapter struct {
	snsPublisher *SNSEventPublisher
}

// NewSNSPublisherAdapter creates an SNS publisher for the given topic. The AWS
// config honours AWS_ENDPOINT_URL, so LocalStack works out of the box.
func NewSNSPublisherAdapter(ctx context.Context, topicArn string, log *zap.Logger) (*SNSPublisherAdapter, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	return &SNSPublisherAdapter{
		snsPublisher: NewSNSEventPublisher(sns.NewFromConfig(cfg), topicArn, log),
	}, nil
}

// Publish implements events.Publisher
func (p *SNSPublisherAdapter) Publish(ctx context.Context, evts ...*events.Event) error {
	return p.snsPublisher.Publish(ctx, evts...)
}

// Close closes the publisher. The SNS client holds no connections of its own.
func (p *SNSPublisherAdapter) Close() error {
	return nil
}
