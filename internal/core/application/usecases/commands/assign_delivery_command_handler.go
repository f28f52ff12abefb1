package commands

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"
)

// AssignDeliveryCommandHandler creates the ASSIGNED record for a ready order. A second
// OrderReady for the same order id replaces the earlier record.
//
// Example:
//
//	handler := NewAssignDeliveryCommandHandler(dispatcher, repo, kernel.SystemClock, logger, m)
//	cmd, _ := NewAssignDeliveryCommand(ready)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // record could not be built or stored
//	}
type AssignDeliveryCommandHandler struct {
	dispatcher *services.DriverDispatcher
	repository ports.DeliveryRepository
	clock      kernel.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewAssignDeliveryCommandHandler creates a handler for AssignDeliveryCommand.
func NewAssignDeliveryCommandHandler(
	dispatcher *services.DriverDispatcher,
	repository ports.DeliveryRepository,
	clock kernel.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		dispatcher: dispatcher,
		repository: repository,
		clock:      clock,
		logger:     logger.With("component", "delivery_tracker"),
		metrics:    m,
	}
}

// Handle assigns a driver and stores the record.
func (h *AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ready := cmd.Ready()
	d, err := h.dispatcher.Dispatch(ready.OrderID, ready.Address, h.clock())
	if err != nil {
		return err
	}

	if err = h.repository.Add(ctx, d); err != nil {
		return err
	}

	snap := d.Snapshot()
	h.metrics.DeliveryAssigned()
	h.logger.InfoContext(ctx, "driver assigned",
		"order_id", snap.OrderID,
		"driver", snap.DriverName,
		"address", snap.Address,
		"estimated_delivery_time", snap.EstimatedDeliveryTime,
	)
	h.logger.InfoContext(ctx, "customer notified",
		"order_id", snap.OrderID,
		"customer", ready.CustomerName,
		"pizza", ready.Pizza,
		"quantity", ready.Quantity,
		"driver", snap.DriverName,
	)
	return nil
}
