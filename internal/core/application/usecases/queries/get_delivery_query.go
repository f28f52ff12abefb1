// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return snapshots, never the live records.
package queries

import (
	"errors"
	"strings"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetDeliveryQueryIsNotConstructed = errors.New(
		"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
	)
)

// GetDeliveryQuery looks up the delivery of one order.
//
// Example:
//
//	query, err := NewGetDeliveryQuery("550e8400-e29b-41d4-a716-446655440000")
//	snap, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetDeliveryQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

func NewGetDeliveryQuery(orderID string) (GetDeliveryQuery, error) {
	if strings.TrimSpace(orderID) == "" {
		return GetDeliveryQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetDeliveryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

func (q GetDeliveryQuery) OrderID() string {
	return q.orderID
}
