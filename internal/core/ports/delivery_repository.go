// Package ports defines the contracts between the application layer and the
// infrastructure: the payment gateway, the event publishers, the message broker and
// the delivery record store.
package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/delivery"
)

// DeliveryRepository holds the delivery records of one tracker process.
// Implementations must allow concurrent inserts and lookups without external locking.
type DeliveryRepository interface {
	// Add stores a record under its order id. A record already stored for the same
	// order id is replaced.
	Add(ctx context.Context, d *delivery.Delivery) error

	// Get returns the record for an order id, or errs.ObjectNotFoundError.
	Get(ctx context.Context, orderID string) (*delivery.Delivery, error)

	// All returns every stored record. The slice is a fresh copy; the records are shared.
	All(ctx context.Context) ([]*delivery.Delivery, error)
}
