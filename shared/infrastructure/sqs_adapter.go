package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/shared/events"
)

// SQSSubscriberAdapter wires an SQS queue into the events.Subscriber interface
type SQSSubscriberAdapter struct {
	queueURL string
	log      *zap.Logger
	cancel   context.CancelFunc
}

// NewSQSSubscriberAdapter creates a new SQS subscriber adapter
func NewSQSSubscriberAdapter(queueURL string, log *zap.Logger) (*SQSSubscriberAdapter, error) {
	if queueURL == "" {
		return nil, errors.New("queue URL is required")
	}
	return &SQSSubscriberAdapter{
		queueURL: queueURL,
		log:      log,
	}, nil
}

// topicFilterHandler drops events whose topic does not match the pattern
type topicFilterHandler struct {
	pattern events.Topic
	next    events.EventHandler
}

func (h *topicFilterHandler) Handle(ctx context.Context, evt *events.Event) error {
	if !evt.Topic.Matches(h.pattern) {
		return nil
	}
	return h.next.Handle(ctx, evt)
}

// Subscribe implements events.Subscriber and blocks until ctx is cancelled
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, topicPattern string, handler events.EventHandler) error {
	if s.cancel != nil {
		return errors.New("subscriber is already running")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load AWS config")
	}

	if topicPattern != "" {
		handler = &topicFilterHandler{pattern: events.Topic(topicPattern), next: handler}
	}

	ctx, s.cancel = context.WithCancel(ctx)
	subscriber := NewSQSEventSubscriber(sqs.NewFromConfig(cfg), s.queueURL, handler, s.log)
	return subscriber.Run(ctx)
}

// Close stops the subscriber
func (s *SQSSubscriberAdapter) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}
