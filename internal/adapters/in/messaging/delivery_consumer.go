package messaging

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/events"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"
)

// DeliveryAssigner assigns a driver to a ready order. AssignDeliveryCommandHandler
// implements it.
type DeliveryAssigner interface {
	Handle(ctx context.Context, cmd commands.AssignDeliveryCommand) error
}

// DeliveryConsumer feeds the order.ready queue into the delivery tracker.
type DeliveryConsumer struct {
	broker     ports.MessageBroker
	assigner   DeliveryAssigner
	consumerID string
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewDeliveryConsumer(
	broker ports.MessageBroker,
	assigner DeliveryAssigner,
	consumerID string,
	logger *slog.Logger,
	m *metrics.Metrics,
) *DeliveryConsumer {
	return &DeliveryConsumer{
		broker:     broker,
		assigner:   assigner,
		consumerID: consumerID,
		logger:     logger.With("component", "delivery_consumer"),
		metrics:    m,
	}
}

// Run consumes until ctx is done.
func (c *DeliveryConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "delivery consumer started", "queue", events.QueueOrderReady)

	handler := messageHandler(events.QueueOrderReady, c.logger, c.metrics,
		func(ctx context.Context, ready events.OrderReady) error {
			cmd, err := commands.NewAssignDeliveryCommand(ready)
			if err != nil {
				return err
			}
			return c.assigner.Handle(ctx, cmd)
		},
	)

	return consumeAll(ctx, c.broker, events.QueueOrderReady, []string{c.consumerID}, handler)
}
