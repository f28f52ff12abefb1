package queries

import (
	"context"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/ports"
)

// GetAllDeliveriesQueryHandler snapshots every delivery record.
type GetAllDeliveriesQueryHandler struct {
	repository ports.DeliveryRepository
}

func NewGetAllDeliveriesQueryHandler(repository ports.DeliveryRepository) GetAllDeliveriesQueryHandler {
	return GetAllDeliveriesQueryHandler{repository: repository}
}

// Handle returns the snapshots keyed by order id. The map is empty, never nil, when
// there are no deliveries.
func (h GetAllDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAllDeliveriesQuery,
) (map[string]delivery.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := h.repository.All(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]delivery.Snapshot, len(records))
	for _, d := range records {
		snap := d.Snapshot()
		result[snap.OrderID] = snap
	}
	return result, nil
}
