package commands

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/events"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/payment"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"
)

const (
	MsgOrderPlacedPrefix     = "Order placed successfully! Your order ID is: "
	MsgPaymentDeclinedPrefix = "Payment was declined: "
	MsgPaymentUnavailable    = "Payment system is currently unavailable. Please try again later."
)

// publishTimeout bounds the OrderPlaced publish. It is detached from the caller's
// context so a request cancelled after the charge cannot drop the event.
const publishTimeout = 5 * time.Second

// PlaceOrderResult is what the order gate tells the caller.
type PlaceOrderResult struct {
	OrderID string
	Outcome order.Outcome
	Message string
}

// PlaceOrderCommandHandler is the order gate: it charges the customer and, only on
// approval, hands the order to the kitchen.
//
//   - gateway unreachable: ERROR, nothing published
//   - charge declined:     PAYMENT_FAILED, nothing published
//   - charge approved:     one OrderPlaced published, SUCCESS
//
// The publish outlives the caller's context: once the charge is approved a
// cancelled request still gets its event enqueued. A publish failure after an
// approved charge is logged and the caller still gets SUCCESS. There is no refund
// path and no retry.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(gateway, publisher, kernel.SystemClock, logger, m)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // cmd was not constructed
//	}
//	fmt.Println(result.Outcome, result.Message)
type PlaceOrderCommandHandler struct {
	gateway   ports.PaymentGateway
	publisher ports.OrderPlacedPublisher
	clock     kernel.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewPlaceOrderCommandHandler creates a handler for PlaceOrderCommand.
func NewPlaceOrderCommandHandler(
	gateway ports.PaymentGateway,
	publisher ports.OrderPlacedPublisher,
	clock kernel.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		gateway:   gateway,
		publisher: publisher,
		clock:     clock,
		logger:    logger.With("component", "order_gate"),
		metrics:   m,
	}
}

// Handle runs the saga's first step for one request. The only returned error is an
// unconstructed command; every business outcome is in the result.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.Pizza(), cmd.Quantity(), cmd.Address(), cmd.CustomerName(), h.clock())
	if err != nil {
		return PlaceOrderResult{}, err
	}
	orderID := o.ID().String()
	log := h.logger.With("order_id", orderID)

	req, err := payment.NewChargeRequest(orderID, o.CustomerName(), o.Amount())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	charge, err := h.gateway.Charge(ctx, req)
	if err != nil {
		log.ErrorContext(ctx, "payment gateway unavailable", "error", err)
		return h.result(orderID, order.OutcomeError, MsgPaymentUnavailable), nil
	}

	if !charge.Success {
		log.InfoContext(ctx, "payment declined", "reason", charge.Message)
		return h.result(orderID, order.OutcomePaymentFailed, MsgPaymentDeclinedPrefix+charge.Message), nil
	}

	log.InfoContext(ctx, "payment approved", "transaction_id", charge.TransactionID, "amount", o.Amount())

	evt, err := events.NewOrderPlaced(o)
	if err == nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		err = h.publisher.PublishOrderPlaced(pubCtx, evt)
		cancel()
	}
	if err != nil {
		// The charge already happened; the order is accepted even though the kitchen
		// may never hear about it.
		log.ErrorContext(ctx, "failed to publish order placed event", "error", err)
	}

	return h.result(orderID, order.OutcomeSuccess, MsgOrderPlacedPrefix+orderID), nil
}

func (h *PlaceOrderCommandHandler) result(orderID string, outcome order.Outcome, message string) PlaceOrderResult {
	h.metrics.OrderSubmitted(outcome.String())
	return PlaceOrderResult{OrderID: orderID, Outcome: outcome, Message: message}
}
