package commands

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/domain/model/payment"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"
)

// ChargePaymentCommandHandler serves the gateway side of a charge, for both the HTTP
// and the gRPC surface.
type ChargePaymentCommandHandler struct {
	processor ports.PaymentGateway
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewChargePaymentCommandHandler creates a handler for ChargePaymentCommand.
func NewChargePaymentCommandHandler(
	processor ports.PaymentGateway,
	logger *slog.Logger,
	m *metrics.Metrics,
) ChargePaymentCommandHandler {
	return ChargePaymentCommandHandler{
		processor: processor,
		logger:    logger.With("component", "payment_gateway"),
		metrics:   m,
	}
}

// Handle charges the request. A decline is a normal result.
func (h *ChargePaymentCommandHandler) Handle(ctx context.Context, cmd ChargePaymentCommand) (payment.ChargeResult, error) {
	if err := cmd.Validate(); err != nil {
		return payment.ChargeResult{}, err
	}

	req := cmd.Request()
	result, err := h.processor.Charge(ctx, req)
	if err != nil {
		return payment.ChargeResult{}, err
	}

	h.metrics.PaymentCharged(result.Success)
	h.logger.InfoContext(ctx, "charge processed",
		"order_id", req.OrderID(),
		"amount", req.Amount(),
		"success", result.Success,
		"transaction_id", result.TransactionID,
	)
	return result, nil
}
