package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/events"
)

// OrderPlacedPublisher hands a charged order to the kitchen.
type OrderPlacedPublisher interface {
	PublishOrderPlaced(ctx context.Context, evt events.OrderPlaced) error
}

// OrderReadyPublisher hands a prepared order to the delivery tracker.
type OrderReadyPublisher interface {
	PublishOrderReady(ctx context.Context, evt events.OrderReady) error
}
