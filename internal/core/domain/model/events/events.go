// Package events defines the messages handed between the saga stages and the durable
// queues that carry them.
//
//	order gate --OrderPlaced--> order.placed --> kitchen --OrderReady--> order.ready --> delivery
//
// Events are immutable values. Their JSON shape is the wire format on both queues.
package events

import (
	"errors"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
)

const (
	// QueueOrderPlaced carries OrderPlaced from the order gate to the kitchen.
	QueueOrderPlaced = "order.placed"
	// QueueOrderReady carries OrderReady from the kitchen to the delivery tracker.
	QueueOrderReady = "order.ready"
)

// OrderPlaced is emitted once per successfully charged order.
type OrderPlaced struct {
	OrderID      string    `json:"orderId"`
	Pizza        string    `json:"pizza"`
	Quantity     int       `json:"quantity"`
	Address      string    `json:"address"`
	CustomerName string    `json:"customerName"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewOrderPlaced builds the event for an accepted order, stamped with the order's
// creation time.
func NewOrderPlaced(o *order.Order) (OrderPlaced, error) {
	if err := o.Validate(); err != nil {
		return OrderPlaced{}, err
	}
	return OrderPlaced{
		OrderID:      o.ID().String(),
		Pizza:        o.Pizza(),
		Quantity:     o.Quantity(),
		Address:      o.Address(),
		CustomerName: o.CustomerName(),
		Timestamp:    o.CreatedAt(),
	}, nil
}

// Validate rejects events that cannot be correlated with an order.
func (e OrderPlaced) Validate() error {
	return validateOrderID(e.OrderID)
}

// Ready copies the order fields into the kitchen's completion event.
func (e OrderPlaced) Ready(preparedAt time.Time) OrderReady {
	return OrderReady{
		OrderID:      e.OrderID,
		Pizza:        e.Pizza,
		Quantity:     e.Quantity,
		Address:      e.Address,
		CustomerName: e.CustomerName,
		PreparedAt:   preparedAt,
	}
}

// OrderReady is emitted once per consumed OrderPlaced, after preparation.
type OrderReady struct {
	OrderID      string    `json:"orderId"`
	Pizza        string    `json:"pizza"`
	Quantity     int       `json:"quantity"`
	Address      string    `json:"address"`
	CustomerName string    `json:"customerName"`
	PreparedAt   time.Time `json:"preparedAt"`
}

// Validate rejects events that cannot be correlated with an order.
func (e OrderReady) Validate() error {
	return validateOrderID(e.OrderID)
}

var errBlankOrderID = errors.New("order id is blank")

func validateOrderID(orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errs.NewValueIsRequiredErrorWithCause("orderId", errBlankOrderID)
	}
	return nil
}
