package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const apiVersionV2 = "v2"

// OrderRequest is the create-order body. Quantity is a pointer so a missing field can
// be told apart from zero.
type OrderRequest struct {
	Pizza        string `json:"pizza"`
	Quantity     *int   `json:"quantity"`
	Address      string `json:"address"`
	CustomerName string `json:"customerName"`
}

type OrderResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type OrderResponseV2 struct {
	OrderResponse
	APIVersion string `json:"apiVersion"`
	Timestamp  string `json:"timestamp"`
}

type ValidationErrorV2 struct {
	Status     string            `json:"status"`
	Errors     map[string]string `json:"errors"`
	APIVersion string            `json:"apiVersion"`
	Timestamp  string            `json:"timestamp"`
}

type HealthV2 struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// OrderServer serves the order gate.
type OrderServer struct {
	placeOrderHandler commands.PlaceOrderCommandHandler
	clock             kernel.Clock
}

func NewOrderServer(placeOrderHandler commands.PlaceOrderCommandHandler, clock kernel.Clock) *OrderServer {
	return &OrderServer{placeOrderHandler: placeOrderHandler, clock: clock}
}

// NewOrderAPI wires the order routes, validating request bodies against the order API
// document.
func NewOrderAPI(s *OrderServer, logger *slog.Logger, gatherer prometheus.Gatherer) (*echo.Echo, error) {
	validate, err := NewRequestValidator(orderDoc)
	if err != nil {
		return nil, err
	}

	e := newEcho(OrderServiceName, OrderDocName, logger, gatherer)
	e.POST("/orders", s.PlaceOrder, validate)
	e.POST("/api/v1/orders", s.PlaceOrder, validate)
	e.POST("/api/v2/orders", s.PlaceOrderV2, validate)
	e.GET("/orders/health", healthHandler(OrderServiceName))
	e.GET("/api/v2/orders/health", s.HealthV2)
	return e, nil
}

// PlaceOrder handles POST /orders and POST /api/v1/orders.
func (s *OrderServer) PlaceOrder(c echo.Context) error {
	var body OrderRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	result, fields, err := s.place(c, body)
	if err != nil {
		return err
	}
	if fields != nil {
		return c.JSON(http.StatusBadRequest, fields)
	}
	return c.JSON(outcomeStatus(result.Outcome), toOrderResponse(result))
}

// PlaceOrderV2 handles POST /api/v2/orders.
func (s *OrderServer) PlaceOrderV2(c echo.Context) error {
	var body OrderRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	result, fields, err := s.place(c, body)
	if err != nil {
		return err
	}
	if fields != nil {
		return c.JSON(http.StatusBadRequest, ValidationErrorV2{
			Status:     order.OutcomeValidationError.String(),
			Errors:     fields,
			APIVersion: apiVersionV2,
			Timestamp:  s.timestamp(),
		})
	}
	return c.JSON(outcomeStatus(result.Outcome), OrderResponseV2{
		OrderResponse: toOrderResponse(result),
		APIVersion:    apiVersionV2,
		Timestamp:     s.timestamp(),
	})
}

// HealthV2 handles GET /api/v2/orders/health.
func (s *OrderServer) HealthV2(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthV2{
		Status:    "UP",
		Service:   OrderServiceName,
		Version:   apiVersionV2,
		Timestamp: s.timestamp(),
	})
}

// place runs the order gate. A validation failure comes back as fields; err is only
// set for failures that should surface as 500.
func (s *OrderServer) place(c echo.Context, body OrderRequest) (commands.PlaceOrderResult, errs.FieldErrors, error) {
	cmd, err := commands.NewPlaceOrderCommand(body.Pizza, body.Quantity, body.Address, body.CustomerName)
	if err != nil {
		var fields errs.FieldErrors
		if errors.As(err, &fields) {
			return commands.PlaceOrderResult{}, fields, nil
		}
		return commands.PlaceOrderResult{}, nil, err
	}

	result, err := s.placeOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return commands.PlaceOrderResult{}, nil, err
	}
	return result, nil, nil
}

func (s *OrderServer) timestamp() string {
	return s.clock().Format(time.RFC3339Nano)
}

func toOrderResponse(result commands.PlaceOrderResult) OrderResponse {
	return OrderResponse{
		OrderID: result.OrderID,
		Status:  result.Outcome.String(),
		Message: result.Message,
	}
}

func outcomeStatus(outcome order.Outcome) int {
	switch outcome {
	case order.OutcomeSuccess:
		return http.StatusCreated
	case order.OutcomePaymentFailed:
		return http.StatusPaymentRequired
	case order.OutcomeError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
