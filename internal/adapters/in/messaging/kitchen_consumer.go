package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/events"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"
)

// OrderPreparer prepares a placed order. PrepareOrderCommandHandler implements it.
type OrderPreparer interface {
	Handle(ctx context.Context, cmd commands.PrepareOrderCommand) error
}

// KitchenConsumer is one kitchen instance: it competes with every other instance for
// messages on the order.placed queue. With more than one worker the instance itself
// prepares that many orders in parallel.
type KitchenConsumer struct {
	broker     ports.MessageBroker
	preparer   OrderPreparer
	instanceID string
	workers    int
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewKitchenConsumer(
	broker ports.MessageBroker,
	preparer OrderPreparer,
	instanceID string,
	workers int,
	logger *slog.Logger,
	m *metrics.Metrics,
) *KitchenConsumer {
	if workers < 1 {
		workers = 1
	}
	return &KitchenConsumer{
		broker:     broker,
		preparer:   preparer,
		instanceID: instanceID,
		workers:    workers,
		logger:     logger.With("component", "kitchen_consumer", "instance", instanceID),
		metrics:    m,
	}
}

// Run consumes until ctx is done.
func (c *KitchenConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "kitchen consumer started", "queue", events.QueueOrderPlaced, "workers", c.workers)

	handler := messageHandler(events.QueueOrderPlaced, c.logger, c.metrics,
		func(ctx context.Context, placed events.OrderPlaced) error {
			cmd, err := commands.NewPrepareOrderCommand(placed)
			if err != nil {
				return err
			}
			return c.preparer.Handle(ctx, cmd)
		},
	)

	return consumeAll(ctx, c.broker, events.QueueOrderPlaced, c.consumerNames(), handler)
}

func (c *KitchenConsumer) consumerNames() []string {
	if c.workers == 1 {
		return []string{c.instanceID}
	}
	names := make([]string, c.workers)
	for i := range names {
		names[i] = fmt.Sprintf("%s-w%d", c.instanceID, i+1)
	}
	return names
}
