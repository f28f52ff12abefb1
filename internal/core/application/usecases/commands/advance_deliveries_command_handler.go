package commands

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"
)

// AdvanceDeliveriesCommandHandler is the delivery sweep. Each record is evaluated on
// its own under its own lock, so a sweep never blocks readers of other records and a
// bad record never stops the pass.
type AdvanceDeliveriesCommandHandler struct {
	repository ports.DeliveryRepository
	dispatcher *services.DriverDispatcher
	clock      kernel.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewAdvanceDeliveriesCommandHandler creates a handler for the delivery sweep.
func NewAdvanceDeliveriesCommandHandler(
	repository ports.DeliveryRepository,
	dispatcher *services.DriverDispatcher,
	clock kernel.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) AdvanceDeliveriesCommandHandler {
	return AdvanceDeliveriesCommandHandler{
		repository: repository,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger.With("component", "delivery_sweep"),
		metrics:    m,
	}
}

// Handle advances every due record by one step and returns how many moved.
func (h *AdvanceDeliveriesCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveriesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	started := time.Now()
	defer func() { h.metrics.SweepCompleted(time.Since(started)) }()

	records, err := h.repository.All(ctx)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, d := range records {
		if ctx.Err() != nil {
			return moved, ctx.Err()
		}
		if h.advance(ctx, d) {
			moved++
		}
	}
	return moved, nil
}

func (h *AdvanceDeliveriesCommandHandler) advance(ctx context.Context, d *delivery.Delivery) (moved bool) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "delivery advance panicked", "order_id", d.OrderID(), "panic", r)
			moved = false
		}
	}()

	if err := d.Validate(); err != nil {
		h.logger.WarnContext(ctx, "skipping invalid delivery record", "error", err)
		return false
	}

	status, changed := d.Advance(h.clock(), h.dispatcher.NextLeg)
	if !changed {
		return false
	}

	h.metrics.DeliveryTransitioned(status.String())
	switch status {
	case delivery.InTransit:
		h.logger.InfoContext(ctx, "driver departed", "order_id", d.OrderID())
	case delivery.Delivered:
		h.logger.InfoContext(ctx, "order delivered", "order_id", d.OrderID())
	}
	return true
}
