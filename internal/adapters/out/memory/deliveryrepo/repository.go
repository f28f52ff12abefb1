// Package deliveryrepo keeps delivery records in process memory.
package deliveryrepo

import (
	"context"
	"sort"
	"sync"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/pkg/errs"
)

// MemoryDeliveryRepository implements DeliveryRepository over a sync.Map keyed by
// order id. Inserts and lookups of different orders never contend on a shared lock;
// each record carries its own lock for transitions.
type MemoryDeliveryRepository struct {
	records sync.Map // order id -> *delivery.Delivery
}

// NewMemoryDeliveryRepository creates an empty in-memory delivery repository.
func NewMemoryDeliveryRepository() *MemoryDeliveryRepository {
	return &MemoryDeliveryRepository{}
}

// Add stores the record, replacing any record stored for the same order id.
func (r *MemoryDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.records.Store(aggregate.OrderID(), aggregate)
	return nil
}

// Get retrieves the record of an order.
func (r *MemoryDeliveryRepository) Get(ctx context.Context, orderID string) (*delivery.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := r.records.Load(orderID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", orderID)
	}
	return value.(*delivery.Delivery), nil
}

// All returns every record ordered by order id.
func (r *MemoryDeliveryRepository) All(ctx context.Context) ([]*delivery.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]*delivery.Delivery, 0)
	r.records.Range(func(_, value any) bool {
		result = append(result, value.(*delivery.Delivery))
		return true
	})

	sort.Slice(result, func(i, j int) bool {
		return result[i].OrderID() < result[j].OrderID()
	})
	return result, nil
}
