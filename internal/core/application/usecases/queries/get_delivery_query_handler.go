package queries

import (
	"context"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/ports"
)

// GetDeliveryQueryHandler reads one delivery record.
type GetDeliveryQueryHandler struct {
	repository ports.DeliveryRepository
}

func NewGetDeliveryQueryHandler(repository ports.DeliveryRepository) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{repository: repository}
}

// Handle returns a snapshot of the record, or errs.ObjectNotFoundError when no
// delivery exists for the order.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (delivery.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return delivery.Snapshot{}, err
	}

	d, err := h.repository.Get(ctx, query.OrderID())
	if err != nil {
		return delivery.Snapshot{}, err
	}
	return d.Snapshot(), nil
}
