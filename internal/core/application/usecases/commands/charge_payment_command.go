package commands

import (
	"pizzeria/internal/core/domain/model/payment"
)

// ChargePaymentCommand is a validated charge arriving at the payment gateway.
type ChargePaymentCommand struct {
	request payment.ChargeRequest
}

// NewChargePaymentCommand validates the charge fields, returning errs.FieldErrors on
// failure.
func NewChargePaymentCommand(orderID, customerName string, amount float64) (ChargePaymentCommand, error) {
	req, err := payment.NewChargeRequest(orderID, customerName, amount)
	if err != nil {
		return ChargePaymentCommand{}, err
	}
	return ChargePaymentCommand{request: req}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChargePaymentCommand) Validate() error {
	return c.request.Validate()
}

func (c ChargePaymentCommand) Request() payment.ChargeRequest {
	return c.request
}
