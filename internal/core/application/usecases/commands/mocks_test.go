package commands_test

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/events"
	"pizzeria/internal/core/domain/model/payment"

	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.DiscardHandler)

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.ChargeResult), args.Error(1)
}

type MockOrderPlacedPublisher struct{ mock.Mock }

func (m *MockOrderPlacedPublisher) PublishOrderPlaced(ctx context.Context, evt events.OrderPlaced) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type MockOrderReadyPublisher struct{ mock.Mock }

func (m *MockOrderReadyPublisher) PublishOrderReady(ctx context.Context, evt events.OrderReady) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, orderID string) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) All(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}
