package http

import (
	"errors"
	"log/slog"
	"net/http"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/payment"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const msgPaymentInternalError = "An unexpected error occurred during payment processing."

type ChargeRequest struct {
	OrderID      string  `json:"orderId"`
	CustomerName string  `json:"customerName"`
	Amount       float64 `json:"amount"`
}

// PaymentServer serves the payment gateway simulator.
type PaymentServer struct {
	chargeHandler commands.ChargePaymentCommandHandler
}

func NewPaymentServer(chargeHandler commands.ChargePaymentCommandHandler) *PaymentServer {
	return &PaymentServer{chargeHandler: chargeHandler}
}

func NewPaymentAPI(s *PaymentServer, logger *slog.Logger, gatherer prometheus.Gatherer) (*echo.Echo, error) {
	validate, err := NewRequestValidator(paymentDoc)
	if err != nil {
		return nil, err
	}

	e := newEcho(PaymentServiceName, PaymentDocName, logger, gatherer)
	e.POST("/pay", s.Charge, validate)
	return e, nil
}

// Charge handles POST /pay: 200 on approval, 402 on decline.
func (s *PaymentServer) Charge(c echo.Context) error {
	var body ChargeRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewChargePaymentCommand(body.OrderID, body.CustomerName, body.Amount)
	if err != nil {
		var fields errs.FieldErrors
		if errors.As(err, &fields) {
			return c.JSON(http.StatusBadRequest, fields)
		}
		return err
	}

	result, err := s.chargeHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, payment.ChargeResult{
			Success: false,
			Message: msgPaymentInternalError,
		})
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusPaymentRequired
	}
	return c.JSON(status, result)
}
