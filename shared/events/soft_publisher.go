package events

import (
	"context"

	"go.uber.org/zap"
)

// BestEffortPublisher is the soft delivery channel for status events. Publish
// failures are logged and discarded; they never reach the caller as an error.
// Hard failures (store writes) keep their ordinary error returns, so the two
// channels cannot be confused in a signature.
type BestEffortPublisher struct {
	publisher Publisher
	log       *zap.Logger
}

// NewBestEffortPublisher wraps a publisher with swallow-and-log semantics
func NewBestEffortPublisher(publisher Publisher, log *zap.Logger) *BestEffortPublisher {
	return &BestEffortPublisher{
		publisher: publisher,
		log:       log,
	}
}

// Publish attempts delivery of the given events and reports nothing back
func (p *BestEffortPublisher) Publish(ctx context.Context, evts ...*Event) {
	if len(evts) == 0 {
		return
	}

	if err := p.publisher.Publish(ctx, evts...); err != nil {
		for _, evt := range evts {
			p.log.Warn("event publish failed, dropping event",
				zap.String("event_type", evt.EventType),
				zap.String("aggregate_id", evt.AggregateID.String()),
				zap.Error(err),
			)
		}
	}
}
