// Package messaging publishes domain events on the message broker.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"pizzeria/internal/core/domain/model/events"
	"pizzeria/internal/core/ports"
)

// EventPublisher encodes events as JSON and sends them to their queue. It implements
// ports.OrderPlacedPublisher and ports.OrderReadyPublisher.
type EventPublisher struct {
	broker ports.MessageBroker
}

var (
	_ ports.OrderPlacedPublisher = (*EventPublisher)(nil)
	_ ports.OrderReadyPublisher  = (*EventPublisher)(nil)
)

// NewEventPublisher creates a publisher that writes saga events to broker.
func NewEventPublisher(broker ports.MessageBroker) *EventPublisher {
	return &EventPublisher{broker: broker}
}

func (p *EventPublisher) PublishOrderPlaced(ctx context.Context, evt events.OrderPlaced) error {
	if err := evt.Validate(); err != nil {
		return err
	}
	return p.publish(ctx, events.QueueOrderPlaced, evt)
}

func (p *EventPublisher) PublishOrderReady(ctx context.Context, evt events.OrderReady) error {
	if err := evt.Validate(); err != nil {
		return err
	}
	return p.publish(ctx, events.QueueOrderReady, evt)
}

func (p *EventPublisher) publish(ctx context.Context, queue string, evt any) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", queue, err)
	}
	if err = p.broker.Publish(ctx, queue, body); err != nil {
		return fmt.Errorf("publish to %s: %w", queue, err)
	}
	return nil
}
