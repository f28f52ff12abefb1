package commands

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"
)

// PrepareOrderCommandHandler is one kitchen instance's work on a placed order: it waits
// the drawn preparation time, then announces the order ready for delivery.
//
// If ctx is cancelled while the pizza is "in the oven" the order is abandoned and
// nothing is published.
//
// Example:
//
//	handler := NewPrepareOrderCommandHandler("kitchen-1", timer, publisher, kernel.SystemClock, logger, m)
//	cmd, _ := NewPrepareOrderCommand(placed)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // cancelled or publish failed
//	}
type PrepareOrderCommandHandler struct {
	instanceID string
	timer      *services.KitchenTimer
	publisher  ports.OrderReadyPublisher
	clock      kernel.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewPrepareOrderCommandHandler creates a handler for PrepareOrderCommand.
func NewPrepareOrderCommandHandler(
	instanceID string,
	timer *services.KitchenTimer,
	publisher ports.OrderReadyPublisher,
	clock kernel.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) PrepareOrderCommandHandler {
	return PrepareOrderCommandHandler{
		instanceID: instanceID,
		timer:      timer,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "kitchen", "instance", instanceID),
		metrics:    m,
	}
}

// Handle prepares the order and publishes OrderReady stamped with the completion time.
func (h *PrepareOrderCommandHandler) Handle(ctx context.Context, cmd PrepareOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	placed := cmd.Placed()
	log := h.logger.With("order_id", placed.OrderID)
	prepTime := h.timer.PreparationTime()

	log.InfoContext(ctx, "preparing order",
		"pizza", placed.Pizza,
		"quantity", placed.Quantity,
		"customer", placed.CustomerName,
		"preparation_time", prepTime,
	)

	if err := services.Sleep(ctx, prepTime); err != nil {
		log.WarnContext(ctx, "preparation abandoned", "error", err)
		return err
	}

	if err := h.publisher.PublishOrderReady(ctx, placed.Ready(h.clock())); err != nil {
		log.ErrorContext(ctx, "failed to publish order ready event", "error", err)
		return err
	}

	h.metrics.OrderPrepared(h.instanceID, prepTime)
	log.InfoContext(ctx, "order ready for delivery")
	return nil
}
