package http_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"

	"pizzeria/internal/core/domain/model/events"
	"pizzeria/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
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

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
