package infrastructure

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hungersaviour/order-system/shared/events"
	"github.com/hungersaviour/order-system/shared/models"
)

// snsEnvelope is what SNS wraps around the message when raw delivery is off
type snsEnvelope struct {
	Message string `json:"Message"`
}

// SQSEventSubscriber long-polls an SQS queue and dispatches decoded events to a
// handler. Handled messages are deleted; failed ones are left for redelivery
// after the visibility timeout.
type SQSEventSubscriber struct {
	client   *sqs.Client
	queueURL string
	handler  events.EventHandler
	log      *zap.Logger
	options  sqsSubscriberOptions
}

type sqsSubscriberOptions struct {
	workers             int
	maxNumberOfMessages int32
	waitTimeSeconds     int32
	visibilityTimeout   int32
	sleepAfterError     time.Duration
}

type SQSSubscriberOption func(*sqsSubscriberOptions)

func WithWorkers(workers int) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.workers = workers
	}
}

func WithVisibilityTimeout(seconds int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.visibilityTimeout = seconds
	}
}

// NewSQSEventSubscriber creates a new SQS event subscriber
func NewSQSEventSubscriber(
	client *sqs.Client,
	queueURL string,
	handler events.EventHandler,
	log *zap.Logger,
	opts ...SQSSubscriberOption,
) *SQSEventSubscriber {
	options := sqsSubscriberOptions{
		workers:             10,
		maxNumberOfMessages: 5,
		waitTimeSeconds:     15,
		visibilityTimeout:   30,
		sleepAfterError:     5 * time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &SQSEventSubscriber{
		client:   client,
		queueURL: queueURL,
		handler:  handler,
		log:      log,
		options:  options,
	}
}

// Run consumes the queue until the context is cancelled
func (s *SQSEventSubscriber) Run(ctx context.Context) error {
	messages := make(chan types.Message)

	var wg sync.WaitGroup
	for i := 0; i < s.options.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range messages {
				s.process(ctx, msg)
			}
		}()
	}

	defer func() {
		close(messages)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:              aws.String(s.queueURL),
			MaxNumberOfMessages:   s.options.maxNumberOfMessages,
			WaitTimeSeconds:       s.options.waitTimeSeconds,
			VisibilityTimeout:     s.options.visibilityTimeout,
			MessageAttributeNames: []string{"All"},
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Error("SQS receive failed", zap.Error(err))
			time.Sleep(s.options.sleepAfterError)
			continue
		}

		for _, msg := range out.Messages {
			select {
			case messages <- msg:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (s *SQSEventSubscriber) process(ctx context.Context, msg types.Message) {
	evt, err := decodeMessage(msg)
	if err != nil {
		s.log.Warn("dropping undecodable SQS message",
			zap.String("message_id", aws.ToString(msg.MessageId)),
			zap.Error(err),
		)
		s.delete(ctx, msg)
		return
	}

	if err := s.handler.Handle(ctx, evt); err != nil {
		// Leave the message in flight; SQS redelivers after the visibility timeout
		s.log.Error("event handler failed",
			zap.String("event_type", evt.EventType),
			zap.Error(err),
		)
		return
	}

	s.delete(ctx, msg)
}

func (s *SQSEventSubscriber) delete(ctx context.Context, msg types.Message) {
	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(s.queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		s.log.Warn("failed to delete SQS message",
			zap.String("message_id", aws.ToString(msg.MessageId)),
			zap.Error(err),
		)
	}
}

func decodeMessage(msg types.Message) (*events.Event, error) {
	body := []byte(aws.ToString(msg.Body))

	// Unwrap the SNS envelope when raw message delivery is disabled
	var envelope snsEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		body = []byte(envelope.Message)
	}

	var message snsMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return nil, errors.Wrap(err, "failed to decode message body")
	}
	if message.Topic == "" {
		return nil, errors.New("message has no topic")
	}

	return &events.Event{
		ID:        models.ID(message.ID),
		Topic:     events.Topic(message.Topic),
		EventType: message.Topic,
		Version:   "1.0",
		Data:      json.RawMessage(message.Payload),
		Metadata:  message.Metadata,
		Timestamp: message.Timestamp,
	}, nil
}
